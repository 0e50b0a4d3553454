package domain

import "time"

// BookingStatus represents the status of a table reservation
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// Booking represents a table reservation in the system
type Booking struct {
	ID         int64
	UniqueCode string // Публичный код бронирования для анонимного поиска (например, "K7M2Q9XD")
	SlotID     int64
	Date       time.Time
	GuestCount int
	Status     BookingStatus

	// Снимок данных клиента на момент бронирования
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusRejected
}

// HoldsCapacity returns true if the booking currently holds a capacity unit of its slot
func (b *Booking) HoldsCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeDecided returns true if an admin decision (approve/reject) is still possible
func (b *Booking) CanBeDecided() bool {
	return b.Status == StatusPending
}

// CanTransition reports whether the status change from the current state is legal
// Допустимые переходы: pending -> approved | rejected | cancelled, approved -> cancelled
func (b *Booking) CanTransition(to BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled
	default:
		return false
	}
}
