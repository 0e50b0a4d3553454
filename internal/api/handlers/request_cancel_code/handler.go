package request_cancel_code

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

// RequestCodeRequest HTTP request model
type RequestCodeRequest struct {
	UniqueCode string `json:"uniqueCode"`
}

// RequestCodeResponse HTTP response model
type RequestCodeResponse struct {
	MaskedRecipient string    `json:"maskedRecipient"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Handle POST /api/v1/cancellations/request-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations/request-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.RequestCode(r.Context(), &customerCancellation.RequestCodeRequest{
		UniqueCode: req.UniqueCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, customerCancellation.ErrBookingNotFound):
			h.logger.Warn("POST /cancellations/request-code - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customerCancellation.ErrAlreadyCancelled):
			h.logger.Warn("POST /cancellations/request-code - Already cancelled")
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, customerCancellation.ErrNotCancellable):
			h.logger.Warn("POST /cancellations/request-code - Not cancellable")
			handlers.RespondConflict(w, msgNotCancellable)

		default:
			h.logger.Error("POST /cancellations/request-code - Failed to issue code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations/request-code - Code sent to %s", result.MaskedRecipient)
	handlers.RespondJSON(w, http.StatusOK, RequestCodeResponse{
		MaskedRecipient: result.MaskedRecipient,
		ExpiresAt:       result.ExpiresAt,
	})
}
