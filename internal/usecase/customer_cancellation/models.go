package customer_cancellation

import "time"

// LookupRequest модель запроса на анонимный поиск бронирования
type LookupRequest struct {
	UniqueCode string // Публичный код бронирования
}

// LookupResponse сводка бронирования для клиента
// Email показывается только в замаскированном виде
type LookupResponse struct {
	UniqueCode      string    // Публичный код
	SlotLabel       string    // Время слота (например, "19:00")
	Date            time.Time // Дата бронирования
	GuestCount      int       // Количество гостей
	Status          string    // Текущий статус
	MaskedRecipient string    // Замаскированный email клиента
	Cancellable     bool      // Возможна ли отмена из текущего статуса
}

// RequestCodeRequest модель запроса на выдачу кода подтверждения
type RequestCodeRequest struct {
	UniqueCode string // Публичный код бронирования
}

// RequestCodeResponse результат выдачи кода
// Сам код наружу не возвращается, только адресат и срок действия
type RequestCodeResponse struct {
	MaskedRecipient string    // Куда отправлен код
	ExpiresAt       time.Time // Срок действия кода
}

// ConfirmRequest модель запроса на подтверждение отмены
type ConfirmRequest struct {
	UniqueCode string // Публичный код бронирования
	Code       string // Одноразовый код из письма
}

// ConfirmResponse результат отмены бронирования
type ConfirmResponse struct {
	UniqueCode  string     // Публичный код
	Status      string     // Итоговый статус (cancelled)
	CancelledAt *time.Time // Момент отмены
}
