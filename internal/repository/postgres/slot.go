package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
)

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `
		SELECT id, doctor_id, date, period, is_booked, created_at, updated_at
		FROM slots
		WHERE id = $1
	`
	var slot model.Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) ListForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Slot, error) {
	query := `
		SELECT id, doctor_id, date, period, is_booked, created_at, updated_at
		FROM slots
		WHERE doctor_id = $1 AND date = $2
		ORDER BY CASE period
			WHEN 'Morning' THEN 1
			WHEN 'Afternoon' THEN 2
			WHEN 'Evening' THEN 3
		END
	`
	var slots []*model.Slot
	if err := r.db.SelectContext(ctx, &slots, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// CreateBatch relies on the unique (doctor_id, date, period) index: racing
// first accesses for the same day insert disjoint subsets and the final
// SELECT sees exactly one slot per period.
func (r *slotRepository) CreateBatch(ctx context.Context, slots []*model.Slot) error {
	query := `
		INSERT INTO slots (id, doctor_id, date, period, is_booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doctor_id, date, period) DO NOTHING
	`
	for _, slot := range slots {
		if slot.ID == uuid.Nil {
			slot.ID = uuid.New()
		}
		slot.CreatedAt = time.Now()
		slot.UpdatedAt = time.Now()

		_, err := r.db.ExecContext(ctx, query,
			slot.ID,
			slot.DoctorID,
			slot.Date,
			slot.Period,
			slot.IsBooked,
			slot.CreatedAt,
			slot.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}
	}
	return nil
}

func (r *slotRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE slots
		SET is_booked = FALSE, updated_at = $2
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}

// bookSlotTx conditionally marks a slot booked inside an open transaction.
// Zero rows affected means another booking won the slot.
func bookSlotTx(ctx context.Context, tx execerContext, id uuid.UUID) error {
	query := `
		UPDATE slots
		SET is_booked = TRUE, updated_at = $2
		WHERE id = $1 AND is_booked = FALSE
	`
	result, err := tx.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to book slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrSlotBooked
	}
	return nil
}

type execerContext interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
