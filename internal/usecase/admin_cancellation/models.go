package admin_cancellation

import "time"

// RequestCodeRequest модель запроса на выдачу кода подтверждения
// Повторный вызов работает как переотправка: выдается свежий код
type RequestCodeRequest struct {
	BookingID int64 // Внутренний ID бронирования
}

// RequestCodeResponse результат выдачи кода
type RequestCodeResponse struct {
	MaskedRecipient string    // Куда отправлен код
	ExpiresAt       time.Time // Срок действия кода
}

// ConfirmRequest модель запроса на подтверждение отмены
type ConfirmRequest struct {
	BookingID int64  // Внутренний ID бронирования
	Code      string // Одноразовый код из письма клиента
}

// ConfirmResponse результат отмены бронирования
type ConfirmResponse struct {
	ID          int64      // ID бронирования
	UniqueCode  string     // Публичный код
	Status      string     // Итоговый статус (cancelled)
	CancelledAt *time.Time // Момент отмены
}
