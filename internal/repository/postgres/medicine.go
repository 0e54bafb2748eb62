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

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	query := `
		INSERT INTO medicines (
			id, name, description, price, category, image, stock,
			requires_prescription, manufacturer, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if medicine.ID == uuid.Nil {
		medicine.ID = uuid.New()
	}
	medicine.CreatedAt = time.Now()
	medicine.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		medicine.ID,
		medicine.Name,
		medicine.Description,
		medicine.Price,
		medicine.Category,
		medicine.Image,
		medicine.Stock,
		medicine.RequiresPrescription,
		medicine.Manufacturer,
		medicine.IsActive,
		medicine.CreatedAt,
		medicine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	query := `
		SELECT id, name, description, price, category, image, stock,
			   requires_prescription, manufacturer, is_active, created_at, updated_at
		FROM medicines
		WHERE id = $1
	`
	var medicine model.Medicine
	err := r.db.GetContext(ctx, &medicine, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return &medicine, nil
}

func (r *medicineRepository) List(ctx context.Context, category string, activeOnly bool) ([]*model.Medicine, error) {
	query := `
		SELECT id, name, description, price, category, image, stock,
			   requires_prescription, manufacturer, is_active, created_at, updated_at
		FROM medicines
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if activeOnly {
		query += " AND is_active = TRUE"
	}

	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, category)
		argCount++
	}

	query += " ORDER BY name ASC"

	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	query := `
		UPDATE medicines
		SET price = $1, stock = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`
	medicine.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		medicine.Price,
		medicine.Stock,
		medicine.IsActive,
		medicine.UpdatedAt,
		medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	return requireRowAffected(result)
}

func (r *medicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM medicines
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	return requireRowAffected(result)
}
