package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
)

const appointmentColumns = `
	id, doctor_id, slot_id, consultation_type, meet_link, status, symptoms,
	patient_name AS "patient.name",
	patient_email AS "patient.email",
	patient_phone AS "patient.phone",
	created_at, updated_at
`

// Create books the slot and inserts the appointment in one transaction so a
// lost-update race between concurrent bookers cannot happen.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := bookSlotTx(ctx, tx, appointment.SlotID); err != nil {
			return err
		}

		query := `
			INSERT INTO appointments (
				id, doctor_id, slot_id, consultation_type, meet_link, status,
				symptoms, patient_name, patient_email, patient_phone,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err := tx.ExecContext(ctx, query,
			appointment.ID,
			appointment.DoctorID,
			appointment.SlotID,
			appointment.ConsultationType,
			appointment.MeetLink,
			appointment.Status,
			appointment.Symptoms,
			appointment.Patient.Name,
			appointment.Patient.Email,
			appointment.Patient.Phone,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters map[string]interface{}) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if v, ok := filters["doctor_id"]; ok {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	if v, ok := filters["status"]; ok {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	query += " ORDER BY created_at ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return requireRowAffected(result)
}

func (r *appointmentRepository) UpdateMeetLink(ctx context.Context, id uuid.UUID, meetLink string) error {
	query := `
		UPDATE appointments
		SET meet_link = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, meetLink, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update meet link: %w", err)
	}
	return requireRowAffected(result)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return requireRowAffected(result)
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
