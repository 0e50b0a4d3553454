package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// ParseQuery собирает фильтр списка бронирований из query параметров
// Поддерживаются slotId, date (YYYY-MM-DD), status и includeTerminal
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if raw := query.Get("slotId"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse slotId: %w", err)
		}
		req.SlotID = &slotID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		req.Date = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeTerminal"); raw != "" {
		includeTerminal, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse includeTerminal: %w", err)
		}
		req.IncludeTerminal = includeTerminal
	}

	return req, nil
}
