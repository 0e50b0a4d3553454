package admin_cancellation

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("admin_cancellation: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("admin_cancellation: booking already cancelled")

	// ErrNotCancellable возвращается, когда отмена из текущего статуса невозможна
	ErrNotCancellable = errors.New("admin_cancellation: booking is not cancellable")

	// ErrNoActiveCode возвращается, когда код подтверждения не запрашивался
	// или уже был использован
	ErrNoActiveCode = errors.New("admin_cancellation: no active confirmation code")

	// ErrCodeExpired возвращается, когда срок действия кода истек
	ErrCodeExpired = errors.New("admin_cancellation: confirmation code expired")

	// ErrCodeMismatch возвращается при неверном коде подтверждения
	ErrCodeMismatch = errors.New("admin_cancellation: confirmation code mismatch")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("admin_cancellation: internal error")
)
