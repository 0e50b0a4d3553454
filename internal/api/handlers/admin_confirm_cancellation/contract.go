package admin_confirm_cancellation

import (
	"context"

	adminCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/admin_cancellation"
)

type AdminCancellationUseCase interface {
	Confirm(ctx context.Context, req *adminCancellation.ConfirmRequest) (*adminCancellation.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
