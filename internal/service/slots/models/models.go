package models

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	Label       string `json:"label"` // "19:00"
	MaxCapacity int    `json:"maxCapacity"`
	IsPeak      bool   `json:"isPeak"`
}

// UpdateSlotRequest запрос на изменение слота
// Каждое поле применяется независимо, незаданные поля не изменяются
type UpdateSlotRequest struct {
	MaxCapacity  *int  `json:"maxCapacity,omitempty"`
	ToggleActive *bool `json:"toggleActive,omitempty"`
	TogglePeak   *bool `json:"togglePeak,omitempty"`
}

// BulkCapacityRequest запрос на установку вместимости всем активным слотам
type BulkCapacityRequest struct {
	MaxCapacity int `json:"maxCapacity"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                int64  `json:"id"`
	Label             string `json:"label"`
	MaxCapacity       int    `json:"maxCapacity"`
	BookedCount       int    `json:"bookedCount"`
	RemainingCapacity int    `json:"remainingCapacity"`
	IsActive          bool   `json:"isActive"`
	IsPeak            bool   `json:"isPeak"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// BulkCapacityResponse результат массового обновления вместимости
type BulkCapacityResponse struct {
	UpdatedSlots int64 `json:"updatedSlots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                s.ID,
		Label:             s.Label.String(),
		MaxCapacity:       s.MaxCapacity,
		BookedCount:       s.BookedCount,
		RemainingCapacity: s.RemainingCapacity(),
		IsActive:          s.IsActive,
		IsPeak:            s.IsPeak,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.TimeSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}
