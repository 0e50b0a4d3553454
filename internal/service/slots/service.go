package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис администрирования слотов
// Занятость слотов (booked_count) здесь не изменяется:
// её мутируют только потоки бронирования через Reserve/Release репозитория
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Create создает новый слот
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: label=%s, maxCapacity=%d, isPeak=%v", req.Label, req.MaxCapacity, req.IsPeak)

	label, err := types.NewTimeStringFromString(req.Label)
	if err != nil {
		s.logger.Warn("CreateSlot: invalid label=%q: %v", req.Label, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidLabel, err)
	}

	if req.MaxCapacity < domain.MinSlotCapacity || req.MaxCapacity > domain.MaxSlotCapacity {
		s.logger.Warn("CreateSlot: invalid capacity=%d", req.MaxCapacity)
		return nil, fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidCapacity, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	slot := &domain.TimeSlot{
		Label:       label,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
		IsPeak:      req.IsPeak,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Get получает слот по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetSlot: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlot: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// List получает все слоты с производными полями занятости
func (s *Service) List(ctx context.Context) (*models.SlotListResponse, error) {
	slotList, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slotList), nil
}

// Update применяет изменения слота: вместимость и переключение флагов
// Уменьшение вместимости ниже текущей занятости допустимо: слот перестает
// принимать бронирования, пока счётчик не опустится ниже нового лимита
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: slot id=%d", id)

	var updated *domain.TimeSlot

	if req.MaxCapacity != nil {
		if *req.MaxCapacity < domain.MinSlotCapacity || *req.MaxCapacity > domain.MaxSlotCapacity {
			s.logger.Warn("UpdateSlot: invalid capacity=%d for slot id=%d", *req.MaxCapacity, id)
			return nil, fmt.Errorf("%w: maxCapacity must be between %d and %d",
				ErrInvalidCapacity, domain.MinSlotCapacity, domain.MaxSlotCapacity)
		}

		slot, err := s.slotRepo.SetCapacity(ctx, id, *req.MaxCapacity)
		if err != nil {
			return nil, s.wrapRepoError("UpdateSlot: SetCapacity", id, err)
		}
		if slot.IsOverSubscribed() {
			s.logger.Warn("UpdateSlot: slot id=%d is over-subscribed (%d booked > %d max), new reservations paused",
				id, slot.BookedCount, slot.MaxCapacity)
		}
		updated = slot
	}

	if req.ToggleActive != nil && *req.ToggleActive {
		slot, err := s.slotRepo.ToggleActive(ctx, id)
		if err != nil {
			return nil, s.wrapRepoError("UpdateSlot: ToggleActive", id, err)
		}
		s.logger.Info("UpdateSlot: slot id=%d active=%v (existing bookings are not affected)", id, slot.IsActive)
		updated = slot
	}

	if req.TogglePeak != nil && *req.TogglePeak {
		slot, err := s.slotRepo.TogglePeak(ctx, id)
		if err != nil {
			return nil, s.wrapRepoError("UpdateSlot: TogglePeak", id, err)
		}
		updated = slot
	}

	// Ничего не изменилось - возвращаем текущее состояние
	if updated == nil {
		return s.Get(ctx, id)
	}

	s.logger.Info("UpdateSlot: successfully updated slot id=%d", id)
	return models.FromDomainSlot(updated), nil
}

// BulkSetCapacity устанавливает вместимость всем активным слотам
// Отключенные слоты не затрагиваются
func (s *Service) BulkSetCapacity(ctx context.Context, req *models.BulkCapacityRequest) (*models.BulkCapacityResponse, error) {
	s.logger.Info("BulkSetCapacity: maxCapacity=%d", req.MaxCapacity)

	if req.MaxCapacity < domain.MinSlotCapacity || req.MaxCapacity > domain.MaxSlotCapacity {
		s.logger.Warn("BulkSetCapacity: invalid capacity=%d", req.MaxCapacity)
		return nil, fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidCapacity, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	updated, err := s.slotRepo.BulkSetCapacity(ctx, req.MaxCapacity)
	if err != nil {
		s.logger.Error("BulkSetCapacity: repository error: %v", err)
		return nil, fmt.Errorf("%w: BulkSetCapacity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkSetCapacity: updated %d active slots", updated)
	return &models.BulkCapacityResponse{UpdatedSlots: updated}, nil
}

func (s *Service) wrapRepoError(op string, id int64, err error) error {
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Warn("%s: slot id=%d not found", op, id)
		return ErrSlotNotFound
	}
	s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
