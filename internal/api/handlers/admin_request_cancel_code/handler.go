package admin_request_cancel_code

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	adminCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/admin_cancellation"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgAlreadyCancelled = "бронирование уже отменено"
	msgNotCancellable   = "бронирование не может быть отменено"
)

type Handler struct {
	useCase AdminCancellationUseCase
	logger  Logger
}

func NewHandler(useCase AdminCancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RequestCodeResponse HTTP response model
type RequestCodeResponse struct {
	MaskedRecipient string    `json:"maskedRecipient"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Handle POST /api/v1/bookings/{bookingId}/cancellation/request-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation/request-code - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.RequestCode(r.Context(), &adminCancellation.RequestCodeRequest{
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, adminCancellation.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation/request-code - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, adminCancellation.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/{id}/cancellation/request-code - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, adminCancellation.ErrNotCancellable):
			h.logger.Warn("POST /bookings/{id}/cancellation/request-code - Not cancellable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotCancellable)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation/request-code - Failed to issue code: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation/request-code - Code sent: booking_id=%d, recipient=%s",
		bookingID, result.MaskedRecipient)
	handlers.RespondJSON(w, http.StatusOK, RequestCodeResponse{
		MaskedRecipient: result.MaskedRecipient,
		ExpiresAt:       result.ExpiresAt,
	})
}
