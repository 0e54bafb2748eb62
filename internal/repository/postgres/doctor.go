package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, name, specialization, hospital_id, city, email,
			experience, fees, rating, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.HospitalID,
		doctor.City,
		doctor.Email,
		doctor.Experience,
		doctor.Fees,
		doctor.Rating,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, name, specialization, hospital_id, city, email,
			   experience, fees, rating, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, specialization, hospital_id, city, email,
			   experience, fees, rating, created_at, updated_at
		FROM doctors
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListByHospitals(ctx context.Context, hospitalIDs []uuid.UUID, specialization string) ([]*model.Doctor, error) {
	if len(hospitalIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(hospitalIDs))
	for i, id := range hospitalIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, name, specialization, hospital_id, city, email,
			   experience, fees, rating, created_at, updated_at
		FROM doctors
		WHERE hospital_id = ANY($1)
	`
	args := []interface{}{pq.Array(ids)}

	if specialization != "" {
		query += " AND specialization = $2"
		args = append(args, specialization)
	}

	query += " ORDER BY rating DESC"

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctors by hospitals: %w", err)
	}
	return doctors, nil
}
