package confirm_cancellation

import (
	"context"

	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

type CustomerCancellationUseCase interface {
	Confirm(ctx context.Context, req *customerCancellation.ConfirmRequest) (*customerCancellation.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
