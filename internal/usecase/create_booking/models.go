package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	SlotID        int64     // ID временного слота
	Date          time.Time // Дата бронирования (без времени)
	GuestCount    int       // Количество гостей
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Email клиента (для кодов отмены и уведомлений)
	CustomerPhone *string   // Телефон клиента (опционально)
	Notes         *string   // Пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	UniqueCode string    // Публичный код бронирования
	SlotID     int64     // ID слота
	Date       time.Time // Дата бронирования
	GuestCount int       // Количество гостей
	Status     string    // Статус бронирования (pending)

	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone *string // Телефон клиента
	Notes         *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
