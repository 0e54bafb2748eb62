package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
)

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (
			id, name, city, email, lat, lng, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	hospital.City = strings.ToLower(hospital.City)
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.City,
		hospital.Email,
		hospital.Lat,
		hospital.Lng,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	query := `
		SELECT id, name, city, email, lat, lng, created_at, updated_at
		FROM hospitals
		WHERE id = $1
	`
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	query := `
		SELECT id, name, city, email, lat, lng, created_at, updated_at
		FROM hospitals
		ORDER BY name ASC
	`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) ListByCity(ctx context.Context, city string) ([]*model.Hospital, error) {
	query := `
		SELECT id, name, city, email, lat, lng, created_at, updated_at
		FROM hospitals
		WHERE city = $1
		ORDER BY name ASC
	`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, strings.ToLower(city)); err != nil {
		return nil, fmt.Errorf("failed to list hospitals by city: %w", err)
	}
	return hospitals, nil
}
