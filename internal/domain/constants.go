package domain

import "time"

// Default configuration values
const (
	DefaultOtpTTL        = 10 * time.Minute
	DefaultOtpCodeLength = 6
)

// Business validation constants
const (
	MinGuestCount = 1
	MaxGuestCount = 20

	MinSlotCapacity = 0
	MaxSlotCapacity = 500

	MaxNotesLength        = 500
	MaxCustomerNameLength = 200

	UniqueCodeLength = 8
	// Алфавит без неоднозначных символов (0/O, 1/I/L)
	UniqueCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирования
// Из этих статусов переходы запрещены
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
}

// CapacityHoldingStatuses список статусов, удерживающих место в слоте
var CapacityHoldingStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
