package decide_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decide_booking: booking not found")

	// ErrAlreadyDecided возвращается, когда бронирование уже не в статусе pending
	ErrAlreadyDecided = errors.New("decide_booking: booking already decided")

	// ErrInvalidOutcome возвращается при недопустимом решении
	// Допустимы только approved и rejected
	ErrInvalidOutcome = errors.New("decide_booking: invalid outcome")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_booking: internal error")
)
