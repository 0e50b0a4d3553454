package challenge

import "errors"

var (
	// ErrChallengeNotFound возвращается, когда для бронирования нет кода
	ErrChallengeNotFound = errors.New("challenge.repository: challenge not found")

	// ErrAlreadyConsumed возвращается при попытке повторно использовать код
	ErrAlreadyConsumed = errors.New("challenge.repository: challenge already consumed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("challenge.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("challenge.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("challenge.repository: failed to scan row")
)
