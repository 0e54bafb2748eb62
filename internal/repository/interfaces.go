package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/model"
)

// Sentinel errors shared by all implementations.
var (
	ErrNotFound   = errors.New("not found")
	ErrSlotBooked = errors.New("slot already booked")
)

// All repository interfaces in one file
type (
	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		List(ctx context.Context) ([]*model.Hospital, error)
		ListByCity(ctx context.Context, city string) ([]*model.Hospital, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		// ListByHospitals returns doctors attached to any of the given
		// hospitals; a non-empty specialization narrows the result.
		ListByHospitals(ctx context.Context, hospitalIDs []uuid.UUID, specialization string) ([]*model.Doctor, error)
	}

	SlotRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Slot, error)
		ListForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Slot, error)
		// CreateBatch inserts slots, silently skipping (doctor, date, period)
		// triples that already exist.
		CreateBatch(ctx context.Context, slots []*model.Slot) error
		// Release flips is_booked back to false. Missing slots are not an
		// error; release is best-effort.
		Release(ctx context.Context, id uuid.UUID) error
	}

	AppointmentRepository interface {
		// Create books the slot and inserts the appointment in one
		// transaction. Returns ErrSlotBooked when the slot was already
		// taken; in that case nothing is written.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters map[string]interface{}) ([]*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		UpdateMeetLink(ctx context.Context, id uuid.UUID, meetLink string) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	LabRepository interface {
		Create(ctx context.Context, lab *model.Lab) error
		Get(ctx context.Context, id uuid.UUID) (*model.Lab, error)
		List(ctx context.Context) ([]*model.Lab, error)
		ListByCity(ctx context.Context, city string) ([]*model.Lab, error)
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
		List(ctx context.Context, category string, activeOnly bool) ([]*model.Medicine, error)
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		List(ctx context.Context) ([]*model.Prescription, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.PrescriptionStatus) error
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Update(ctx context.Context, notification *model.Notification) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
