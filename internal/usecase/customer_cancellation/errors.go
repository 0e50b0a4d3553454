package customer_cancellation

import "errors"

var (
	// ErrBookingNotFound возвращается, когда код бронирования неизвестен
	// Один и тот же ответ для несуществующего и невалидного кода
	ErrBookingNotFound = errors.New("customer_cancellation: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("customer_cancellation: booking already cancelled")

	// ErrNotCancellable возвращается, когда бронирование в терминальном
	// статусе, из которого отмена невозможна (rejected)
	ErrNotCancellable = errors.New("customer_cancellation: booking is not cancellable")

	// ErrNoActiveCode возвращается, когда код подтверждения не запрашивался
	// или уже был использован
	ErrNoActiveCode = errors.New("customer_cancellation: no active confirmation code")

	// ErrCodeExpired возвращается, когда срок действия кода истек
	ErrCodeExpired = errors.New("customer_cancellation: confirmation code expired")

	// ErrCodeMismatch возвращается при неверном коде подтверждения
	ErrCodeMismatch = errors.New("customer_cancellation: confirmation code mismatch")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("customer_cancellation: internal error")
)
