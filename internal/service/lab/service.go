package lab

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/errors"
)

type Service struct {
	labs repository.LabRepository
}

func NewService(labs repository.LabRepository) *Service {
	return &Service{labs: labs}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Lab, error) {
	lab, err := s.labs.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("lab", err)
		}
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}
	return lab, nil
}

// List returns all labs, or only those in a city when one is given.
func (s *Service) List(ctx context.Context, city string) ([]*model.Lab, error) {
	city = strings.ToLower(strings.TrimSpace(city))

	var (
		labs []*model.Lab
		err  error
	)
	if city == "" {
		labs, err = s.labs.List(ctx)
	} else {
		labs, err = s.labs.ListByCity(ctx, city)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	return labs, nil
}
