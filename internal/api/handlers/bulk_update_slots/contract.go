package bulk_update_slots

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

type SlotService interface {
	BulkSetCapacity(ctx context.Context, req *models.BulkCapacityRequest) (*models.BulkCapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
