package slot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/errors"
)

type fakeSlotRepo struct {
	slots map[uuid.UUID]*model.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*model.Slot)}
}

func (r *fakeSlotRepo) Get(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeSlotRepo) ListForDate(_ context.Context, doctorID uuid.UUID, date string) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*model.Slot) error {
	for _, s := range slots {
		exists := false
		for _, have := range r.slots {
			if have.DoctorID == s.DoctorID && have.Date == s.Date && have.Period == s.Period {
				exists = true
				break
			}
		}
		if !exists {
			r.slots[s.ID] = s
		}
	}
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id uuid.UUID) error {
	if s, ok := r.slots[id]; ok {
		s.IsBooked = false
	}
	return nil
}

func TestEnsureForDateCreatesPeriods(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := NewService(repo)
	doctorID := uuid.New()

	slots, err := svc.EnsureForDate(context.Background(), doctorID, "2026-09-15")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	periods := make(map[model.SlotPeriod]bool)
	for _, s := range slots {
		assert.False(t, s.IsBooked)
		assert.Equal(t, doctorID, s.DoctorID)
		periods[s.Period] = true
	}
	assert.True(t, periods[model.SlotPeriodMorning])
	assert.True(t, periods[model.SlotPeriodAfternoon])
	assert.True(t, periods[model.SlotPeriodEvening])
}

func TestEnsureForDateIdempotent(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := NewService(repo)
	doctorID := uuid.New()

	first, err := svc.EnsureForDate(context.Background(), doctorID, "2026-09-15")
	require.NoError(t, err)
	second, err := svc.EnsureForDate(context.Background(), doctorID, "2026-09-15")
	require.NoError(t, err)

	assert.Len(t, second, len(first))
	assert.Len(t, repo.slots, 3)
}

func TestEnsureForDateRejectsBadDate(t *testing.T) {
	svc := NewService(newFakeSlotRepo())

	_, err := svc.EnsureForDate(context.Background(), uuid.New(), "15-09-2026")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}
