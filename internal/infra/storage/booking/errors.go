package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrCodeCollision возвращается при конфликте уникального кода бронирования
	// Вызывающая сторона должна сгенерировать новый код и повторить вставку
	ErrCodeCollision = errors.New("booking.repository: unique code collision")

	// ErrIllegalTransition возвращается, когда текущий статус бронирования
	// не входит в список допустимых для запрошенного перехода
	ErrIllegalTransition = errors.New("booking.repository: illegal status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
