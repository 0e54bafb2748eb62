package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Service struct {
	slots repository.SlotRepository
}

func NewService(slots repository.SlotRepository) *Service {
	return &Service{slots: slots}
}

// EnsureForDate returns the doctor's slots for a date, lazily creating the
// standard periods the first time the date is asked for. Concurrent callers
// may both attempt the insert; the unique index makes that harmless.
func (s *Service) EnsureForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Slot, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.BadRequest(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date), err)
	}

	slots, err := s.slots.ListForDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	if len(slots) > 0 {
		return slots, nil
	}

	batch := make([]*model.Slot, 0, len(model.DefaultSlotPeriods()))
	now := time.Now()
	for _, period := range model.DefaultSlotPeriods() {
		batch = append(batch, &model.Slot{
			Base:     model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			DoctorID: doctorID,
			Date:     date,
			Period:   period,
			IsBooked: false,
		})
	}
	if err := s.slots.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}

	slots, err = s.slots.ListForDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}
