package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeBookingRepository struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			result := *b
			return &result, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepository) GetByUniqueCode(_ context.Context, code string) (*domain.Booking, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, b := range r.bookings {
		if b.UniqueCode == normalized {
			result := *b
			return &result, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepository) List(_ context.Context, filter bookingRepo.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if filter.SlotID != nil && b.SlotID != *filter.SlotID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeTerminal && filter.Status == nil && b.IsTerminal() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBookings() []*domain.Booking {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	return []*domain.Booking{
		{ID: 1, UniqueCode: "K7M2Q9XD", SlotID: 10, Date: date, GuestCount: 4,
			Status: domain.StatusPending, CustomerName: "Анна", CustomerEmail: "anna@example.com"},
		{ID: 2, UniqueCode: "P3R8T2VW", SlotID: 10, Date: date, GuestCount: 2,
			Status: domain.StatusApproved, CustomerName: "Борис", CustomerEmail: "boris@example.com"},
		{ID: 3, UniqueCode: "X9Y4Z7AB", SlotID: 11, Date: date, GuestCount: 6,
			Status: domain.StatusCancelled, CustomerName: "Вера", CustomerEmail: "vera@example.com"},
	}
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(&fakeBookingRepository{bookings: testBookings()}, nopLogger{})

	booking, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "K7M2Q9XD", booking.UniqueCode)
	assert.Equal(t, "2025-10-15", booking.Date)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_FindByUniqueCode(t *testing.T) {
	svc := NewService(&fakeBookingRepository{bookings: testBookings()}, nopLogger{})

	booking, err := svc.FindByUniqueCode(context.Background(), "k7m2q9xd")
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)

	// Неизвестный и пустой код дают один и тот же ответ
	_, err = svc.FindByUniqueCode(context.Background(), "ZZZZZZZZ")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.FindByUniqueCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	svc := NewService(&fakeBookingRepository{bookings: testBookings()}, nopLogger{})

	// По умолчанию терминальные бронирования скрыты
	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{IncludeTerminal: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{SlotID: ptr.Ptr(int64(11)), IncludeTerminal: true})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(3), resp.Bookings[0].ID)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("approved")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepository{bookings: testBookings()}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
