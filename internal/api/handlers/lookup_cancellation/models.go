package lookup_cancellation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerCancellation "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
)

// LookupRequest HTTP request model
type LookupRequest struct {
	UniqueCode string `json:"uniqueCode"`
}

// LookupResponse HTTP response model
// Контактные данные клиента отдаются только в замаскированном виде
type LookupResponse struct {
	UniqueCode      string `json:"uniqueCode"`
	SlotLabel       string `json:"slotLabel"`
	Date            string `json:"date"`
	GuestCount      int    `json:"guestCount"`
	Status          string `json:"status"`
	MaskedRecipient string `json:"maskedRecipient"`
	Cancellable     bool   `json:"cancellable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *customerCancellation.LookupResponse) *LookupResponse {
	return &LookupResponse{
		UniqueCode:      resp.UniqueCode,
		SlotLabel:       resp.SlotLabel,
		Date:            resp.Date.Format(domain.DateFormat),
		GuestCount:      resp.GuestCount,
		Status:          resp.Status,
		MaskedRecipient: resp.MaskedRecipient,
		Cancellable:     resp.Cancellable,
	}
}
