package decide_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// fakeBookingRepository повторяет семантику UPDATE c ограничением по статусам
type fakeBookingRepository struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *fakeBookingRepository) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	allowed := false
	for _, status := range from {
		if b.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return bookingRepo.ErrIllegalTransition
	}

	b.Status = to
	if to == domain.StatusCancelled {
		now := time.Now()
		b.CancelledAt = &now
	}
	return nil
}

type fakeSlotRepository struct {
	released []int64
}

func (r *fakeSlotRepository) Release(_ context.Context, id int64) error {
	r.released = append(r.released, id)
	return nil
}

type fakeMailer struct {
	recipients []string
	subjects   []string
}

func (m *fakeMailer) SendBestEffort(_ context.Context, recipient, subject, _ string) {
	m.recipients = append(m.recipients, recipient)
	m.subjects = append(m.subjects, subject)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking(id, slotID int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		UniqueCode:    "K7M2Q9XD",
		SlotID:        slotID,
		Date:          time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		GuestCount:    4,
		Status:        domain.StatusPending,
		CustomerName:  "Анна Смирнова",
		CustomerEmail: "anna@example.com",
	}
}

func newTestUseCase(bookings *fakeBookingRepository, slots *fakeSlotRepository, mailer *fakeMailer) *UseCase {
	return NewUseCase(bookings, slots, fakeTxManager{}, mailer, nopLogger{})
}

func TestUseCase_Execute_Approve(t *testing.T) {
	bookings := &fakeBookingRepository{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10),
	}}
	slots := &fakeSlotRepository{}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, slots, mailer)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: "approved"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Equal(t, domain.StatusApproved, bookings.bookings[1].Status)

	// Подтверждение продолжает удерживать место
	assert.Empty(t, slots.released)

	require.Len(t, mailer.recipients, 1)
	assert.Equal(t, "anna@example.com", mailer.recipients[0])
}

func TestUseCase_Execute_Reject(t *testing.T) {
	bookings := &fakeBookingRepository{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10),
	}}
	slots := &fakeSlotRepository{}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, slots, mailer)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: "rejected"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)

	// Отклонение освобождает место в слоте
	assert.Equal(t, []int64{10}, slots.released)
	require.Len(t, mailer.recipients, 1)
}

func TestUseCase_Execute_InvalidOutcome(t *testing.T) {
	bookings := &fakeBookingRepository{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10),
	}}
	uc := newTestUseCase(bookings, &fakeSlotRepository{}, &fakeMailer{})

	for _, outcome := range []string{"", "pending", "cancelled", "APPROVED", "yes"} {
		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: outcome})
		assert.ErrorIs(t, err, ErrInvalidOutcome, "outcome %q", outcome)
	}

	assert.Equal(t, domain.StatusPending, bookings.bookings[1].Status)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepository{bookings: map[int64]*domain.Booking{}},
		&fakeSlotRepository{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, Outcome: "approved"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_AlreadyDecided(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{name: "already approved", status: domain.StatusApproved},
		{name: "already rejected", status: domain.StatusRejected},
		{name: "already cancelled", status: domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pendingBooking(1, 10)
			b.Status = tt.status
			bookings := &fakeBookingRepository{bookings: map[int64]*domain.Booking{1: b}}
			slots := &fakeSlotRepository{}
			uc := newTestUseCase(bookings, slots, &fakeMailer{})

			_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: "approved"})
			assert.ErrorIs(t, err, ErrAlreadyDecided)

			// Повторное решение не трогает ни статус, ни счётчик слота
			assert.Equal(t, tt.status, bookings.bookings[1].Status)
			assert.Empty(t, slots.released)
		})
	}
}
