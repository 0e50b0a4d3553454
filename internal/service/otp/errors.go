package otp

import "errors"

var (
	// ErrNoActiveChallenge возвращается, когда для бронирования нет
	// действующего кода (не выдавался или уже использован)
	ErrNoActiveChallenge = errors.New("otp: no active challenge")

	// ErrChallengeExpired возвращается, когда срок действия кода истек
	ErrChallengeExpired = errors.New("otp: challenge expired")

	// ErrCodeMismatch возвращается, когда код не совпадает с действующим
	ErrCodeMismatch = errors.New("otp: code mismatch")

	// ErrInvalidRecipient возвращается при некорректном email получателя
	ErrInvalidRecipient = errors.New("otp: invalid recipient email")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("otp service: internal error")
)
