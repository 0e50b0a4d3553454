package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"slotId": 1,
	"date": "2025-10-15",
	"guestCount": 4,
	"customerName": "Анна Смирнова",
	"customerEmail": "anna@example.com"
}`

func TestHandler_Handle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            7,
		UniqueCode:    "K7M2Q9XD",
		SlotID:        1,
		Date:          time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		GuestCount:    4,
		Status:        "pending",
		CustomerName:  "Анна Смирнова",
		CustomerEmail: "anna@example.com",
	}}
	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "K7M2Q9XD", resp.UniqueCode)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "pending", resp.Status)

	// Дата распарсена до вызова use case
	require.NotNil(t, uc.req)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), uc.req.Date)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		useCaseErr error
		wantStatus int
	}{
		{name: "malformed json", body: "{", wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"slotId": 1, "tables": 2}`, wantStatus: http.StatusBadRequest},
		{name: "bad date format", body: `{"slotId": 1, "date": "15.10.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "slot not found", body: validBody, useCaseErr: createBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "slot inactive", body: validBody, useCaseErr: createBooking.ErrSlotInactive, wantStatus: http.StatusConflict},
		{name: "slot full", body: validBody, useCaseErr: createBooking.ErrSlotFull, wantStatus: http.StatusConflict},
		{name: "date in past", body: validBody, useCaseErr: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: validBody, useCaseErr: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal error", body: validBody, useCaseErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeUseCase{err: tt.useCaseErr}, nopLogger{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
