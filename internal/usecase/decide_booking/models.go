package decide_booking

import "time"

// Request модель запроса на решение по бронированию
type Request struct {
	BookingID int64  // ID бронирования
	Outcome   string // "approved" или "rejected"
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID         int64     // ID бронирования
	UniqueCode string    // Публичный код
	SlotID     int64     // ID слота
	Date       time.Time // Дата бронирования
	GuestCount int       // Количество гостей
	Status     string    // Новый статус

	CustomerName  string // Имя клиента
	CustomerEmail string // Email клиента
}
