package lookup_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
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

// Handle POST /api/v1/cancellations/lookup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Lookup(r.Context(), &customerCancellation.LookupRequest{
		UniqueCode: req.UniqueCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, customerCancellation.ErrBookingNotFound):
			// Код в лог не пишем: это фактически пароль бронирования
			h.logger.Warn("POST /cancellations/lookup - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /cancellations/lookup - Failed to lookup booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations/lookup - Booking found: code=%s, status=%s",
		result.UniqueCode, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
