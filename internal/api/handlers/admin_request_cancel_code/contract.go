package admin_request_cancel_code

import (
	"context"

	adminCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/admin_cancellation"
)

type AdminCancellationUseCase interface {
	RequestCode(ctx context.Context, req *adminCancellation.RequestCodeRequest) (*adminCancellation.RequestCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
