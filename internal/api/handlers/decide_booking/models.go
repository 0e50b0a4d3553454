package decide_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	decideBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/decide_booking"
)

// DecideBookingRequest HTTP request model
type DecideBookingRequest struct {
	Outcome string `json:"outcome"` // "approved" или "rejected"
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *DecideBookingRequest) ToUseCaseRequest(bookingID int64) *decideBooking.Request {
	return &decideBooking.Request{
		BookingID: bookingID,
		Outcome:   r.Outcome,
	}
}

// DecideBookingResponse HTTP response model
type DecideBookingResponse struct {
	ID           int64  `json:"id"`
	UniqueCode   string `json:"uniqueCode"`
	SlotID       int64  `json:"slotId"`
	Date         string `json:"date"`
	GuestCount   int    `json:"guestCount"`
	Status       string `json:"status"`
	CustomerName string `json:"customerName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *decideBooking.Response) *DecideBookingResponse {
	return &DecideBookingResponse{
		ID:           resp.ID,
		UniqueCode:   resp.UniqueCode,
		SlotID:       resp.SlotID,
		Date:         resp.Date.Format(domain.DateFormat),
		GuestCount:   resp.GuestCount,
		Status:       resp.Status,
		CustomerName: resp.CustomerName,
	}
}
