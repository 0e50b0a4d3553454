package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ReservationService/internal/service/slots/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// fakeSlotRepository in-memory репозиторий слотов
type fakeSlotRepository struct {
	slots  map[int64]*domain.TimeSlot
	nextID int64
}

func newFakeSlotRepository(slots ...*domain.TimeSlot) *fakeSlotRepository {
	repo := &fakeSlotRepository{slots: make(map[int64]*domain.TimeSlot)}
	for _, s := range slots {
		repo.slots[s.ID] = s
		if s.ID > repo.nextID {
			repo.nextID = s.ID
		}
	}
	return repo
}

func (r *fakeSlotRepository) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	r.nextID++
	stored := *slot
	stored.ID = r.nextID
	r.slots[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *fakeSlotRepository) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	result := *s
	return &result, nil
}

func (r *fakeSlotRepository) List(_ context.Context) ([]*domain.TimeSlot, error) {
	result := make([]*domain.TimeSlot, 0, len(r.slots))
	for _, s := range r.slots {
		copied := *s
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeSlotRepository) SetCapacity(_ context.Context, id int64, newMax int) (*domain.TimeSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	s.MaxCapacity = newMax
	result := *s
	return &result, nil
}

func (r *fakeSlotRepository) BulkSetCapacity(_ context.Context, newMax int) (int64, error) {
	var updated int64
	for _, s := range r.slots {
		if s.IsActive {
			s.MaxCapacity = newMax
			updated++
		}
	}
	return updated, nil
}

func (r *fakeSlotRepository) ToggleActive(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	s.IsActive = !s.IsActive
	result := *s
	return &result, nil
}

func (r *fakeSlotRepository) TogglePeak(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	s.IsPeak = !s.IsPeak
	result := *s
	return &result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Create(t *testing.T) {
	repo := newFakeSlotRepository()
	svc := NewService(repo, nopLogger{})

	slot, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		Label:       "19:00",
		MaxCapacity: 12,
		IsPeak:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "19:00", slot.Label)
	assert.Equal(t, 12, slot.MaxCapacity)
	assert.Equal(t, 12, slot.RemainingCapacity)
	assert.True(t, slot.IsPeak)

	// Новый слот сразу принимает бронирования
	assert.True(t, slot.IsActive)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newFakeSlotRepository(), nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		Label:       "25:00",
		MaxCapacity: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidLabel)

	_, err = svc.Create(context.Background(), &models.CreateSlotRequest{
		Label:       "19:00",
		MaxCapacity: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = svc.Create(context.Background(), &models.CreateSlotRequest{
		Label:       "19:00",
		MaxCapacity: domain.MaxSlotCapacity + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestService_Update_Capacity(t *testing.T) {
	repo := newFakeSlotRepository(&domain.TimeSlot{
		ID: 1, Label: "19:00", MaxCapacity: 10, BookedCount: 6, IsActive: true,
	})
	svc := NewService(repo, nopLogger{})

	// Уменьшение ниже занятого допустимо: остаток обнуляется
	slot, err := svc.Update(context.Background(), 1, &models.UpdateSlotRequest{
		MaxCapacity: ptr.Ptr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, slot.MaxCapacity)
	assert.Equal(t, 6, slot.BookedCount)
	assert.Equal(t, 0, slot.RemainingCapacity)
}

func TestService_Update_Toggles(t *testing.T) {
	repo := newFakeSlotRepository(&domain.TimeSlot{
		ID: 1, Label: "19:00", MaxCapacity: 10, IsActive: true,
	})
	svc := NewService(repo, nopLogger{})

	slot, err := svc.Update(context.Background(), 1, &models.UpdateSlotRequest{
		ToggleActive: ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.False(t, slot.IsActive)

	slot, err = svc.Update(context.Background(), 1, &models.UpdateSlotRequest{
		ToggleActive: ptr.Ptr(true),
		TogglePeak:   ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, slot.IsActive)
	assert.True(t, slot.IsPeak)
}

func TestService_Update_EmptyRequestReturnsCurrentState(t *testing.T) {
	repo := newFakeSlotRepository(&domain.TimeSlot{
		ID: 1, Label: "19:00", MaxCapacity: 10, BookedCount: 2, IsActive: true,
	})
	svc := NewService(repo, nopLogger{})

	slot, err := svc.Update(context.Background(), 1, &models.UpdateSlotRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, slot.MaxCapacity)
	assert.Equal(t, 8, slot.RemainingCapacity)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newFakeSlotRepository(), nopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateSlotRequest{
		MaxCapacity: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_BulkSetCapacity(t *testing.T) {
	repo := newFakeSlotRepository(
		&domain.TimeSlot{ID: 1, Label: "18:00", MaxCapacity: 10, IsActive: true},
		&domain.TimeSlot{ID: 2, Label: "19:00", MaxCapacity: 10, IsActive: true},
		&domain.TimeSlot{ID: 3, Label: "20:00", MaxCapacity: 10, IsActive: false},
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.BulkSetCapacity(context.Background(), &models.BulkCapacityRequest{MaxCapacity: 15})
	require.NoError(t, err)

	// Отключенный слот не затронут
	assert.Equal(t, int64(2), resp.UpdatedSlots)
	assert.Equal(t, 15, repo.slots[1].MaxCapacity)
	assert.Equal(t, 15, repo.slots[2].MaxCapacity)
	assert.Equal(t, 10, repo.slots[3].MaxCapacity)
}

func TestService_BulkSetCapacity_InvalidCapacity(t *testing.T) {
	svc := NewService(newFakeSlotRepository(), nopLogger{})

	_, err := svc.BulkSetCapacity(context.Background(), &models.BulkCapacityRequest{MaxCapacity: -5})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(newFakeSlotRepository(), nopLogger{})

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
