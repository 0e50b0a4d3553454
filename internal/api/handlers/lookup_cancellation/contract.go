package lookup_cancellation

import (
	"context"

	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

type CustomerCancellationUseCase interface {
	Lookup(ctx context.Context, req *customerCancellation.LookupRequest) (*customerCancellation.LookupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
