package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeSlot represents a bookable time window with a table capacity
type TimeSlot struct {
	ID          int64
	Label       types.TimeString // Отображаемое время слота (например, "19:00")
	MaxCapacity int              // Максимальное число столов в слоте
	BookedCount int              // Число столов, занятых активными бронированиями
	IsActive    bool             // Принимает ли слот новые бронирования
	IsPeak      bool             // Пометка пикового слота (информационная)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingCapacity returns the number of tables still available in the slot
func (s *TimeSlot) RemainingCapacity() int {
	remaining := s.MaxCapacity - s.BookedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull returns true if no tables are available
func (s *TimeSlot) IsFull() bool {
	return s.BookedCount >= s.MaxCapacity
}

// AcceptsBookings returns true if the slot can take a new reservation
func (s *TimeSlot) AcceptsBookings() bool {
	return s.IsActive && !s.IsFull()
}

// IsOverSubscribed returns true if the booked count exceeds the capacity ceiling
// Возможно после административного уменьшения maxCapacity; слот перестает
// принимать новые бронирования, пока счётчик не опустится ниже лимита
func (s *TimeSlot) IsOverSubscribed() bool {
	return s.BookedCount > s.MaxCapacity
}
