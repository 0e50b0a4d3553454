package slots

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	List(ctx context.Context) ([]*domain.TimeSlot, error)
	SetCapacity(ctx context.Context, id int64, newMax int) (*domain.TimeSlot, error)
	BulkSetCapacity(ctx context.Context, newMax int) (int64, error)
	ToggleActive(ctx context.Context, id int64) (*domain.TimeSlot, error)
	TogglePeak(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
