package admin_confirm_cancellation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	adminCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/admin_cancellation"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgNotCancellable     = "бронирование не может быть отменено"
	msgNoActiveCode       = "код подтверждения не запрашивался или уже использован"
	msgCodeExpired        = "срок действия кода подтверждения истек"
	msgCodeMismatch       = "неверный код подтверждения"
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

// ConfirmRequest HTTP request model
type ConfirmRequest struct {
	Code string `json:"code"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	ID          int64      `json:"id"`
	UniqueCode  string     `json:"uniqueCode"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// Handle POST /api/v1/bookings/{bookingId}/cancellation/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Confirm(r.Context(), &adminCancellation.ConfirmRequest{
		BookingID: bookingID,
		Code:      req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, adminCancellation.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, adminCancellation.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, adminCancellation.ErrNotCancellable):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Not cancellable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotCancellable)

		case errors.Is(err, adminCancellation.ErrNoActiveCode):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - No active code: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNoActiveCode)

		case errors.Is(err, adminCancellation.ErrCodeExpired):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Code expired: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCodeExpired)

		case errors.Is(err, adminCancellation.ErrCodeMismatch):
			h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Code mismatch: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCodeMismatch)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation/confirm - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID := int64(0)
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		adminID = session.AdminID
	}

	h.logger.Info("POST /bookings/{id}/cancellation/confirm - Booking cancelled: booking_id=%d, admin_id=%d",
		result.ID, adminID)
	handlers.RespondJSON(w, http.StatusOK, ConfirmResponse{
		ID:          result.ID,
		UniqueCode:  result.UniqueCode,
		Status:      result.Status,
		CancelledAt: result.CancelledAt,
	})
}
