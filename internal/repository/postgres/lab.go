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

func (r *labRepository) Create(ctx context.Context, lab *model.Lab) error {
	query := `
		INSERT INTO labs (id, name, city, address, rating, tests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if lab.ID == uuid.Nil {
		lab.ID = uuid.New()
	}
	lab.City = strings.ToLower(lab.City)
	lab.CreatedAt = time.Now()
	lab.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		lab.ID,
		lab.Name,
		lab.City,
		lab.Address,
		lab.Rating,
		lab.Tests,
		lab.CreatedAt,
		lab.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab: %w", err)
	}
	return nil
}

func (r *labRepository) Get(ctx context.Context, id uuid.UUID) (*model.Lab, error) {
	query := `
		SELECT id, name, city, address, rating, tests, created_at, updated_at
		FROM labs
		WHERE id = $1
	`
	var lab model.Lab
	err := r.db.GetContext(ctx, &lab, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}
	return &lab, nil
}

func (r *labRepository) List(ctx context.Context) ([]*model.Lab, error) {
	query := `
		SELECT id, name, city, address, rating, tests, created_at, updated_at
		FROM labs
		ORDER BY rating DESC
	`
	var labs []*model.Lab
	if err := r.db.SelectContext(ctx, &labs, query); err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	return labs, nil
}

func (r *labRepository) ListByCity(ctx context.Context, city string) ([]*model.Lab, error) {
	query := `
		SELECT id, name, city, address, rating, tests, created_at, updated_at
		FROM labs
		WHERE city = $1
		ORDER BY rating DESC
	`
	var labs []*model.Lab
	if err := r.db.SelectContext(ctx, &labs, query, strings.ToLower(city)); err != nil {
		return nil, fmt.Errorf("failed to list labs by city: %w", err)
	}
	return labs, nil
}
