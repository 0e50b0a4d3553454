package customer_cancellation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	slotStorage "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	decideBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/decide_booking"
)

// Общие фейки для сквозного сценария: один живой счетчик слота и одно
// хранилище бронирований на все три use case

type scenarioSlotRepository struct {
	slot domain.TimeSlot
}

func (r *scenarioSlotRepository) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	if id != r.slot.ID {
		return nil, slotStorage.ErrSlotNotFound
	}
	result := r.slot
	return &result, nil
}

// Reserve повторяет семантику условного UPDATE со всеми его ограничениями
func (r *scenarioSlotRepository) Reserve(_ context.Context, id int64) error {
	if id != r.slot.ID {
		return slotStorage.ErrSlotNotFound
	}
	if !r.slot.IsActive {
		return slotStorage.ErrSlotInactive
	}
	if r.slot.BookedCount >= r.slot.MaxCapacity {
		return slotStorage.ErrSlotFull
	}
	r.slot.BookedCount++
	return nil
}

func (r *scenarioSlotRepository) Release(_ context.Context, id int64) error {
	if id != r.slot.ID {
		return slotStorage.ErrSlotNotFound
	}
	if r.slot.BookedCount > 0 {
		r.slot.BookedCount--
	}
	return nil
}

type scenarioBookingRepository struct {
	nextID int64
	byID   map[int64]*domain.Booking
	byCode map[string]*domain.Booking
}

func newScenarioBookingRepository() *scenarioBookingRepository {
	return &scenarioBookingRepository{
		byID:   make(map[int64]*domain.Booking),
		byCode: make(map[string]*domain.Booking),
	}
}

func (r *scenarioBookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	code := strings.ToUpper(booking.UniqueCode)
	if _, ok := r.byCode[code]; ok {
		return nil, bookingStorage.ErrCodeCollision
	}

	r.nextID++
	stored := *booking
	stored.ID = r.nextID
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &stored
	r.byCode[code] = &stored

	result := stored
	return &result, nil
}

func (r *scenarioBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *scenarioBookingRepository) GetByUniqueCode(_ context.Context, code string) (*domain.Booking, error) {
	b, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *scenarioBookingRepository) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	for _, status := range from {
		if b.Status == status {
			b.Status = to
			if to == domain.StatusCancelled {
				now := time.Now()
				b.CancelledAt = &now
			}
			return nil
		}
	}
	return bookingStorage.ErrIllegalTransition
}

// Жизненный цикл слота вместимостью два стола: два бронирования занимают
// его целиком, отказ администратора и отмена клиента возвращают места
func TestBookingLifecycleRoundTrip(t *testing.T) {
	slots := &scenarioSlotRepository{slot: domain.TimeSlot{
		ID: 10, Label: "19:00", MaxCapacity: 2, IsActive: true,
	}}
	bookings := newScenarioBookingRepository()
	otpSvc := newFakeOtpService("123456")
	mailer := &fakeMailer{}

	createUC := createBookingUC.NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})
	decideUC := decideBookingUC.NewUseCase(bookings, slots, fakeTxManager{}, mailer, nopLogger{})
	cancelUC := NewUseCase(bookings, slots, otpSvc, fakeTxManager{}, mailer, nopLogger{})

	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 7)

	newRequest := func(name, email string) *createBookingUC.Request {
		return &createBookingUC.Request{
			SlotID:        10,
			Date:          date,
			GuestCount:    2,
			CustomerName:  name,
			CustomerEmail: email,
		}
	}

	// Два бронирования занимают слот целиком
	first, err := createUC.Execute(ctx, newRequest("Анна Смирнова", "anna@example.com"))
	require.NoError(t, err)
	second, err := createUC.Execute(ctx, newRequest("Пётр Иванов", "petr@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, slots.slot.BookedCount)

	// Третьему места уже нет
	_, err = createUC.Execute(ctx, newRequest("Олег Кузнецов", "oleg@example.com"))
	require.ErrorIs(t, err, createBookingUC.ErrSlotFull)
	assert.Equal(t, 2, slots.slot.BookedCount)

	// Отказ по первому бронированию возвращает место
	_, err = decideUC.Execute(ctx, &decideBookingUC.Request{BookingID: first.ID, Outcome: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, 1, slots.slot.BookedCount)

	// Второе бронирование клиент отменяет сам через код подтверждения
	_, err = cancelUC.RequestCode(ctx, &RequestCodeRequest{UniqueCode: second.UniqueCode})
	require.NoError(t, err)

	resp, err := cancelUC.Confirm(ctx, &ConfirmRequest{UniqueCode: second.UniqueCode, Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, 0, slots.slot.BookedCount)

	// Освободившийся слот снова принимает бронирования
	_, err = createUC.Execute(ctx, newRequest("Олег Кузнецов", "oleg@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, slots.slot.BookedCount)
}
