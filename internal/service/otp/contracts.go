package otp

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ChallengeRepository интерфейс репозитория кодов подтверждения
type ChallengeRepository interface {
	Replace(ctx context.Context, ch *domain.OtpChallenge) (*domain.OtpChallenge, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.OtpChallenge, error)
	Consume(ctx context.Context, id int64) error
	DeleteByBookingID(ctx context.Context, bookingID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
