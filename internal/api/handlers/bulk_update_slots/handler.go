package bulk_update_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCapacity    = "некорректная вместимость слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkSetCapacity(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidCapacity):
			h.logger.Warn("PUT /slots/capacity - Invalid capacity: %d", req.MaxCapacity)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		default:
			h.logger.Error("PUT /slots/capacity - Failed to update slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/capacity - Capacity applied to %d slots", result.UpdatedSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
