package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusSent     NotificationStatus = "sent"
	NotificationStatusFailed   NotificationStatus = "failed"
	NotificationStatusRetrying NotificationStatus = "retrying"
)

const (
	NotificationChannelEmail = "email"
)

// Notification is one outbound message. Dispatch happens off the request
// path: the row is written together with an outbox event, and the worker
// does the actual send.
type Notification struct {
	ID         uuid.UUID          `db:"id" json:"id"`
	Channel    string             `db:"channel" json:"channel" validate:"required"`
	Recipient  string             `db:"recipient" json:"recipient" validate:"required,email"`
	Subject    string             `db:"subject" json:"subject" validate:"required"`
	Content    string             `db:"content" json:"content" validate:"required"`
	Status     NotificationStatus `db:"status" json:"status"`
	RetryCount int                `db:"retry_count" json:"retry_count"`
	LastError  *string            `db:"last_error" json:"last_error,omitempty"`
	SentAt     *time.Time         `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updated_at"`
}
