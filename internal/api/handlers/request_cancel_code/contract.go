package request_cancel_code

import (
	"context"

	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

type CustomerCancellationUseCase interface {
	RequestCode(ctx context.Context, req *customerCancellation.RequestCodeRequest) (*customerCancellation.RequestCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
