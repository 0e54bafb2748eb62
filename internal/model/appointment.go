package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// CanTransitionTo reports whether the status state machine allows moving to
// next: pending -> confirmed|cancelled, confirmed -> completed|cancelled.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	default:
		return false
	}
}

type ConsultationType string

const (
	ConsultationVideo    ConsultationType = "video"
	ConsultationInPerson ConsultationType = "in-person"
)

// NotProvided is the sentinel stored for contact fields a patient did not
// supply. Notification sends are suppressed for sentinel emails.
const NotProvided = "Not Provided"

// PatientContact is the contact block embedded in an appointment.
type PatientContact struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

// HasEmail reports whether a real address was captured.
func (p PatientContact) HasEmail() bool {
	return p.Email != "" && p.Email != NotProvided
}

// PatientInput accepts the two shapes booking clients send for "patient":
// a bare name string, or a full contact object. Either way it resolves to a
// complete PatientContact with sentinels for missing fields.
type PatientInput struct {
	PatientContact
}

func (p *PatientInput) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.PatientContact = PatientContact{Name: name, Email: NotProvided, Phone: NotProvided}
		return nil
	}

	var contact PatientContact
	if err := json.Unmarshal(data, &contact); err != nil {
		return err
	}
	p.PatientContact = contact.withDefaults()
	return nil
}

// Contact returns the resolved contact. A zero PatientInput, which is what
// binding produces when the request body omits "patient" entirely, gets the
// same defaults as an empty object.
func (p PatientInput) Contact() PatientContact {
	return p.PatientContact.withDefaults()
}

func (c PatientContact) withDefaults() PatientContact {
	if c.Name == "" {
		c.Name = "Guest User"
	}
	if c.Email == "" {
		c.Email = NotProvided
	}
	if c.Phone == "" {
		c.Phone = NotProvided
	}
	return c
}

type Appointment struct {
	Base
	DoctorID         uuid.UUID         `db:"doctor_id" json:"doctorId"`
	SlotID           uuid.UUID         `db:"slot_id" json:"slotId"`
	ConsultationType ConsultationType  `db:"consultation_type" json:"consultationType"`
	MeetLink         *string           `db:"meet_link" json:"meetLink,omitempty"`
	Status           AppointmentStatus `db:"status" json:"status"`
	Symptoms         string            `db:"symptoms" json:"symptoms,omitempty"`
	Patient          PatientContact    `db:"patient" json:"patient"`
}

type CreateAppointmentRequest struct {
	DoctorID         uuid.UUID        `json:"doctorId" binding:"required"`
	SlotID           uuid.UUID        `json:"slotId" binding:"required"`
	ConsultationType ConsultationType `json:"consultationType" binding:"required,oneof=video in-person"`
	Patient          PatientInput     `json:"patient"`
	Symptoms         string           `json:"symptoms" binding:"max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type UpdateMeetLinkRequest struct {
	MeetLink string `json:"meet_link" binding:"required,url"`
}
