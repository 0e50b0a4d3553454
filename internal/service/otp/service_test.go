package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	challengeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/challenge"
)

// fakeChallengeRepository in-memory репозиторий с семантикой ON CONFLICT (booking_id)
type fakeChallengeRepository struct {
	byBooking map[int64]*domain.OtpChallenge
	nextID    int64
}

func newFakeChallengeRepository() *fakeChallengeRepository {
	return &fakeChallengeRepository{
		byBooking: make(map[int64]*domain.OtpChallenge),
		nextID:    1,
	}
}

func (r *fakeChallengeRepository) Replace(_ context.Context, ch *domain.OtpChallenge) (*domain.OtpChallenge, error) {
	stored := *ch
	if existing, ok := r.byBooking[ch.BookingID]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = r.nextID
		r.nextID++
	}
	stored.Consumed = false
	r.byBooking[ch.BookingID] = &stored

	result := stored
	return &result, nil
}

func (r *fakeChallengeRepository) GetByBookingID(_ context.Context, bookingID int64) (*domain.OtpChallenge, error) {
	ch, ok := r.byBooking[bookingID]
	if !ok {
		return nil, challengeRepo.ErrChallengeNotFound
	}
	result := *ch
	return &result, nil
}

func (r *fakeChallengeRepository) Consume(_ context.Context, id int64) error {
	for _, ch := range r.byBooking {
		if ch.ID == id {
			if ch.Consumed {
				return challengeRepo.ErrAlreadyConsumed
			}
			ch.Consumed = true
			return nil
		}
	}
	return challengeRepo.ErrChallengeNotFound
}

func (r *fakeChallengeRepository) DeleteByBookingID(_ context.Context, bookingID int64) error {
	delete(r.byBooking, bookingID)
	return nil
}

func (r *fakeChallengeRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var deleted int64
	for bookingID, ch := range r.byBooking {
		if ch.ExpiresAt.Before(before) {
			delete(r.byBooking, bookingID)
			deleted++
		}
	}
	return deleted, nil
}

// fakeTimeProvider управляемое время для проверки истечения кодов
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

func newTestService(repo ChallengeRepository, clock TimeProvider) *Service {
	return &Service{
		challengeRepo: repo,
		ttl:           domain.DefaultOtpTTL,
		timeProvider:  clock,
		logger:        nopLogger{},
	}
}

func TestService_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	issued, err := svc.Issue(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)
	assert.Len(t, issued.Code, domain.DefaultOtpCodeLength)
	assert.Equal(t, "ja***@example.com", issued.MaskedRecipient)
	assert.Equal(t, clock.now.Add(domain.DefaultOtpTTL), issued.ExpiresAt)

	require.NoError(t, svc.Verify(ctx, 42, issued.Code))

	// Код одноразовый: повторная проверка того же кода отвергается
	err = svc.Verify(ctx, 42, issued.Code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestService_VerifyMismatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	issued, err := svc.Issue(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)

	wrong := "000000"
	if issued.Code == wrong {
		wrong = "000001"
	}

	err = svc.Verify(ctx, 42, wrong)
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// Неудачная попытка не тратит код
	require.NoError(t, svc.Verify(ctx, 42, issued.Code))
}

func TestService_VerifyExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	issued, err := svc.Issue(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)

	clock.now = clock.now.Add(domain.DefaultOtpTTL + time.Second)

	err = svc.Verify(ctx, 42, issued.Code)
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestService_VerifyWithoutIssue(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Now()}
	svc := newTestService(repo, clock)

	err := svc.Verify(ctx, 42, "123456")
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestService_ReissueSupersedesPreviousCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	first, err := svc.Issue(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)

	second, err := svc.Resend(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(domain.DefaultOtpTTL), second.ExpiresAt)

	// Старый код больше не действует, даже если совпадает посимвольно
	if first.Code != second.Code {
		err = svc.Verify(ctx, 42, first.Code)
		assert.ErrorIs(t, err, ErrCodeMismatch)
	}

	require.NoError(t, svc.Verify(ctx, 42, second.Code))
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	issued, err := svc.Issue(ctx, 42, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(ctx, 42))

	err = svc.Verify(ctx, 42, issued.Code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestService_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	clock := &fakeTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clock)

	_, err := svc.Issue(ctx, 1, "jane.doe@example.com", domain.PurposeCustomerCancel)
	require.NoError(t, err)

	clock.now = clock.now.Add(5 * time.Minute)
	fresh, err := svc.Issue(ctx, 2, "john@example.com", domain.PurposeAdminCancel)
	require.NoError(t, err)

	// Первый код истек, второй еще в окне действия
	clock.now = clock.now.Add(domain.DefaultOtpTTL - time.Minute)

	deleted, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, svc.Verify(ctx, 2, fresh.Code))
}

func TestService_IssueInvalidRecipient(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChallengeRepository()
	svc := newTestService(repo, &fakeTimeProvider{now: time.Now()})

	_, err := svc.Issue(ctx, 42, "not-an-email", domain.PurposeCustomerCancel)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestGenerateCode(t *testing.T) {
	// Формат фиксированный: ровно шесть цифр, ведущие нули сохраняются
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, domain.DefaultOtpCodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in code %q", r, code)
		}
	}
}

func TestMaskRecipient(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		want    string
		wantErr bool
	}{
		{name: "regular address", email: "jane.doe@example.com", want: "ja***@example.com"},
		{name: "two character local part", email: "ab@example.com", want: "ab***@example.com"},
		{name: "single character local part", email: "a@example.com", want: "a***@example.com"},
		{name: "subdomain", email: "guest@mail.restaurant.ru", want: "gu***@mail.restaurant.ru"},
		{name: "missing local part", email: "@example.com", wantErr: true},
		{name: "missing domain", email: "jane@", wantErr: true},
		{name: "no at sign", email: "jane.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaskRecipient(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecipient)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
