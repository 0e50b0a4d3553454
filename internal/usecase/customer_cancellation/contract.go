package customer_cancellation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/otp"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByUniqueCode(ctx context.Context, code string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Release(ctx context.Context, id int64) error
}

// OtpService интерфейс сервиса одноразовых кодов
type OtpService interface {
	Issue(ctx context.Context, bookingID int64, recipientEmail string, purpose domain.ChallengePurpose) (*otp.IssueResult, error)
	Verify(ctx context.Context, bookingID int64, submittedCode string) error
	Invalidate(ctx context.Context, bookingID int64) error
}

// Mailer интерфейс клиента рассылки
type Mailer interface {
	SendBestEffort(ctx context.Context, recipient, subject, body string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
