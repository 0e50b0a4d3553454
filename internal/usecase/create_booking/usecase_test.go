package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
)

// fakeSlotRepository повторяет семантику условного UPDATE в Reserve
type fakeSlotRepository struct {
	slot domain.TimeSlot
	err  error
}

func (r *fakeSlotRepository) Reserve(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if id != r.slot.ID {
		return slotRepo.ErrSlotNotFound
	}
	if !r.slot.IsActive {
		return slotRepo.ErrSlotInactive
	}
	if r.slot.BookedCount >= r.slot.MaxCapacity {
		return slotRepo.ErrSlotFull
	}
	r.slot.BookedCount++
	return nil
}

// fakeBookingRepository хранит созданные бронирования, умеет
// имитировать конфликт уникального кода заданное число раз
type fakeBookingRepository struct {
	collisions int
	created    []*domain.Booking
	nextID     int64
}

func (r *fakeBookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.collisions > 0 {
		r.collisions--
		return nil, bookingRepo.ErrCodeCollision
	}

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.created = append(r.created, &stored)

	result := stored
	return &result, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepository, slots *fakeSlotRepository, tx *fakeTxManager, now time.Time) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		slotRepo:     slots,
		txManager:    tx,
		timeProvider: &fakeTimeProvider{now: now},
		logger:       nopLogger{},
	}
}

func validRequest(slotID int64, date time.Time) *Request {
	return &Request{
		SlotID:        slotID,
		Date:          date,
		GuestCount:    4,
		CustomerName:  "Анна Смирнова",
		CustomerEmail: "anna@example.com",
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepository{}
	slots := &fakeSlotRepository{slot: domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true}}
	tx := &fakeTxManager{}
	uc := newTestUseCase(bookings, slots, tx, now)

	resp, err := uc.Execute(context.Background(), validRequest(1, date))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Len(t, resp.UniqueCode, domain.UniqueCodeLength)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, slots.slot.BookedCount)
	require.Len(t, bookings.created, 1)
	assert.Equal(t, resp.UniqueCode, bookings.created[0].UniqueCode)

	// Код состоит только из символов рабочего алфавита
	for _, r := range resp.UniqueCode {
		assert.Contains(t, domain.UniqueCodeAlphabet, string(r))
	}
}

func TestUseCase_Execute_SlotErrors(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slot    domain.TimeSlot
		slotID  int64
		wantErr error
	}{
		{
			name:    "slot not found",
			slot:    domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true},
			slotID:  99,
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "slot inactive",
			slot:    domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: false},
			slotID:  1,
			wantErr: ErrSlotInactive,
		},
		{
			name:    "slot full",
			slot:    domain.TimeSlot{ID: 1, MaxCapacity: 2, BookedCount: 2, IsActive: true},
			slotID:  1,
			wantErr: ErrSlotFull,
		},
		{
			name:    "over-subscribed slot rejects new bookings",
			slot:    domain.TimeSlot{ID: 1, MaxCapacity: 2, BookedCount: 5, IsActive: true},
			slotID:  1,
			wantErr: ErrSlotFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepository{}
			slots := &fakeSlotRepository{slot: tt.slot}
			uc := newTestUseCase(bookings, slots, &fakeTxManager{}, now)

			_, err := uc.Execute(context.Background(), validRequest(tt.slotID, date))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, bookings.created)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}
	longNotesStr := string(longNotes)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "non-positive slot id",
			mutate:  func(req *Request) { req.SlotID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "date in the past",
			mutate:  func(req *Request) { req.Date = now.AddDate(0, 0, -1) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "zero guests",
			mutate:  func(req *Request) { req.GuestCount = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "too many guests",
			mutate:  func(req *Request) { req.GuestCount = domain.MaxGuestCount + 1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty customer name",
			mutate:  func(req *Request) { req.CustomerName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid email",
			mutate:  func(req *Request) { req.CustomerEmail = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "notes too long",
			mutate:  func(req *Request) { req.Notes = &longNotesStr },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := &fakeSlotRepository{slot: domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true}}
			tx := &fakeTxManager{}
			uc := newTestUseCase(&fakeBookingRepository{}, slots, tx, now)

			req := validRequest(1, date)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			// Валидация отрабатывает до транзакции и резервирования
			assert.Zero(t, tx.calls)
			assert.Zero(t, slots.slot.BookedCount)
		})
	}
}

func TestUseCase_Execute_BookingTodayIsAllowed(t *testing.T) {
	now := time.Date(2025, 10, 10, 23, 30, 0, 0, time.UTC)
	today := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	slots := &fakeSlotRepository{slot: domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true}}
	uc := newTestUseCase(&fakeBookingRepository{}, slots, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest(1, today))
	require.NoError(t, err)
}

func TestUseCase_Execute_CodeCollisionRetries(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Два конфликта подряд, третья попытка успешна
	bookings := &fakeBookingRepository{collisions: 2}
	slots := &fakeSlotRepository{slot: domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true}}
	uc := newTestUseCase(bookings, slots, &fakeTxManager{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(1, date))
	require.NoError(t, err)
	assert.Len(t, resp.UniqueCode, domain.UniqueCodeLength)
	assert.Len(t, bookings.created, 1)
}

func TestUseCase_Execute_CodeCollisionExhausted(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepository{collisions: maxCodeAttempts}
	slots := &fakeSlotRepository{slot: domain.TimeSlot{ID: 1, MaxCapacity: 10, IsActive: true}}
	uc := newTestUseCase(bookings, slots, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest(1, date))
	assert.ErrorIs(t, err, ErrCodeGeneration)
	assert.Empty(t, bookings.created)
}

func TestGenerateUniqueCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateUniqueCode()
		require.NoError(t, err)
		require.Len(t, code, domain.UniqueCodeLength)
		for _, r := range code {
			assert.Contains(t, domain.UniqueCodeAlphabet, string(r))
		}
		seen[code] = true
	}
	// При 31^8 вариантах сто кодов практически не могут совпасть
	assert.Len(t, seen, 100)
}
