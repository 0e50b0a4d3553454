package confirm_cancellation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgNotCancellable     = "бронирование не может быть отменено"
	msgNoActiveCode       = "код подтверждения не запрашивался или уже использован"
	msgCodeExpired        = "срок действия кода подтверждения истек"
	msgCodeMismatch       = "неверный код подтверждения"
)

type Handler struct {
	useCase CustomerCancellationUseCase
	logger  Logger
}

func NewHandler(useCase CustomerCancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// ConfirmRequest HTTP request model
type ConfirmRequest struct {
	UniqueCode string `json:"uniqueCode"`
	Code       string `json:"code"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	UniqueCode  string     `json:"uniqueCode"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// Handle POST /api/v1/cancellations/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Confirm(r.Context(), &customerCancellation.ConfirmRequest{
		UniqueCode: req.UniqueCode,
		Code:       req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, customerCancellation.ErrBookingNotFound):
			h.logger.Warn("POST /cancellations/confirm - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customerCancellation.ErrAlreadyCancelled):
			h.logger.Warn("POST /cancellations/confirm - Already cancelled")
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, customerCancellation.ErrNotCancellable):
			h.logger.Warn("POST /cancellations/confirm - Not cancellable")
			handlers.RespondConflict(w, msgNotCancellable)

		case errors.Is(err, customerCancellation.ErrNoActiveCode):
			h.logger.Warn("POST /cancellations/confirm - No active code")
			handlers.RespondBadRequest(w, msgNoActiveCode)

		case errors.Is(err, customerCancellation.ErrCodeExpired):
			h.logger.Warn("POST /cancellations/confirm - Code expired")
			handlers.RespondBadRequest(w, msgCodeExpired)

		case errors.Is(err, customerCancellation.ErrCodeMismatch):
			h.logger.Warn("POST /cancellations/confirm - Code mismatch")
			handlers.RespondBadRequest(w, msgCodeMismatch)

		default:
			h.logger.Error("POST /cancellations/confirm - Failed to cancel booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations/confirm - Booking cancelled: code=%s", result.UniqueCode)
	handlers.RespondJSON(w, http.StatusOK, ConfirmResponse{
		UniqueCode:  result.UniqueCode,
		Status:      result.Status,
		CancelledAt: result.CancelledAt,
	})
}
