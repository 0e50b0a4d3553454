package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotInactive возвращается, когда слот отключен от приема бронирований
	ErrSlotInactive = errors.New("create_booking: slot is inactive")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных столов
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCodeGeneration возвращается, когда не удалось подобрать свободный
	// уникальный код за отведенное число попыток
	ErrCodeGeneration = errors.New("create_booking: failed to generate unique code")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
