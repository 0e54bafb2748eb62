package pharmacy

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/errors"
	"github.com/smarthealth/booking-api/pkg/validator"
)

// Service covers the pharmacy catalog and prescription uploads.
type Service struct {
	medicines     repository.MedicineRepository
	prescriptions repository.PrescriptionRepository
	validator     validator.Validator
}

func NewService(medicines repository.MedicineRepository, prescriptions repository.PrescriptionRepository) *Service {
	return &Service{
		medicines:     medicines,
		prescriptions: prescriptions,
		validator:     validator.New(),
	}
}

func (s *Service) CreateMedicine(ctx context.Context, req *model.CreateMedicineRequest) (*model.Medicine, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, errors.BadRequest(err.Error(), nil)
	}

	now := time.Now()
	medicine := &model.Medicine{
		Base:                 model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Category:             req.Category,
		Image:                req.Image,
		Stock:                req.Stock,
		RequiresPrescription: req.RequiresPrescription,
		Manufacturer:         req.Manufacturer,
		IsActive:             true,
	}
	if err := s.medicines.Create(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}
	return medicine, nil
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	medicine, err := s.medicines.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("medicine", err)
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return medicine, nil
}

// ListMedicines returns active medicines, optionally filtered by category.
func (s *Service) ListMedicines(ctx context.Context, category string) ([]*model.Medicine, error) {
	medicines, err := s.medicines.List(ctx, category, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, id uuid.UUID, req *model.UpdateMedicineRequest) (*model.Medicine, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, errors.BadRequest(err.Error(), nil)
	}

	medicine, err := s.GetMedicine(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		medicine.Price = *req.Price
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.IsActive != nil {
		medicine.IsActive = *req.IsActive
	}
	medicine.UpdatedAt = time.Now()

	if err := s.medicines.Update(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}
	return medicine, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if err := s.medicines.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("medicine", err)
		}
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	return nil
}

func (s *Service) CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, errors.BadRequest(err.Error(), nil)
	}

	now := time.Now()
	prescription := &model.Prescription{
		Base:         model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PatientName:  req.PatientName,
		Notes:        req.Notes,
		FilePath:     req.FilePath,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		Status:       model.PrescriptionStatusPending,
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("prescription", err)
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return prescription, nil
}

func (s *Service) ListPrescriptions(ctx context.Context) ([]*model.Prescription, error) {
	prescriptions, err := s.prescriptions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *Service) UpdatePrescriptionStatus(ctx context.Context, id uuid.UUID, status model.PrescriptionStatus) (*model.Prescription, error) {
	prescription, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.Status != model.PrescriptionStatusPending {
		return nil, errors.Conflict(fmt.Sprintf("prescription already %s", prescription.Status), nil)
	}

	if err := s.prescriptions.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update prescription status: %w", err)
	}
	prescription.Status = status
	return prescription, nil
}
