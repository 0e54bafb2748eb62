package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/validator"
)

// Service enqueues outbound notifications. Nothing is sent inline: the row
// and a matching outbox event are persisted, and the dispatch worker does
// the delivery. Callers treat errors as non-fatal.
type Service interface {
	Send(ctx context.Context, notification *model.Notification) error
}

type service struct {
	repo      repository.NotificationRepository
	outbox    repository.OutboxRepository
	validator validator.Validator
}

func NewService(repo repository.NotificationRepository, outbox repository.OutboxRepository) Service {
	return &service{
		repo:      repo,
		outbox:    outbox,
		validator: validator.New(),
	}
}

func (s *service) Send(ctx context.Context, notification *model.Notification) error {
	if err := s.validator.Validate(notification); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	notification.ID = uuid.New()
	notification.Status = model.NotificationStatusPending
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	event := &model.OutboxEvent{
		EventType: model.EventNotificationCreated,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue notification event: %w", err)
	}

	return nil
}
