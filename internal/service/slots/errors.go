package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidCapacity возвращается при отрицательной вместимости
	ErrInvalidCapacity = errors.New("invalid slot capacity")

	// ErrInvalidLabel возвращается при некорректном времени слота
	ErrInvalidLabel = errors.New("invalid slot label")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
