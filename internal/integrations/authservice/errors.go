package authservice

import "errors"

var (
	// ErrSessionInvalid возвращается для отсутствующего, истекшего или чужого токена
	ErrSessionInvalid = errors.New("authservice client: session is invalid")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
