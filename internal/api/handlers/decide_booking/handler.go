package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	decideBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/decide_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyDecided     = "решение по бронированию уже принято"
	msgInvalidOutcome     = "некорректное решение, ожидается approved или rejected"
)

type Handler struct {
	useCase DecideBookingUseCase
	logger  Logger
}

func NewHandler(useCase DecideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req DecideBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, decideBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, decideBooking.ErrAlreadyDecided):
			h.logger.Warn("PATCH /bookings/{id}/decision - Already decided: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, decideBooking.ErrInvalidOutcome):
			h.logger.Warn("PATCH /bookings/{id}/decision - Invalid outcome: booking_id=%d, outcome=%q",
				bookingID, req.Outcome)
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		default:
			h.logger.Error("PATCH /bookings/{id}/decision - Failed to decide booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID := int64(0)
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		adminID = session.AdminID
	}

	h.logger.Info("PATCH /bookings/{id}/decision - Decision applied: booking_id=%d, status=%s, admin_id=%d",
		result.ID, result.Status, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
