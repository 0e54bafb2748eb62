package appointment

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/internal/service/notification"
	"github.com/smarthealth/booking-api/pkg/errors"
)

const meetLinkChars = "abcdefghijklmnopqrstuvwxyz0123456789"

type Service struct {
	appointments  repository.AppointmentRepository
	slots         repository.SlotRepository
	doctors       repository.DoctorRepository
	hospitals     repository.HospitalRepository
	notifications notification.Service
	backendURL    string
	logger        *zerolog.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	slots repository.SlotRepository,
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	notifications notification.Service,
	backendURL string,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		appointments:  appointments,
		slots:         slots,
		doctors:       doctors,
		hospitals:     hospitals,
		notifications: notifications,
		backendURL:    strings.TrimRight(backendURL, "/"),
		logger:        logger,
	}
}

// Create books the slot and records the appointment as pending, then asks
// the doctor (or the hospital front desk when the doctor has no address on
// file) to approve it. Notification failures never fail the booking.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	slot, err := s.slots.Get(ctx, req.SlotID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	if slot.DoctorID != doctor.ID {
		return nil, errors.BadRequest("slot does not belong to this doctor", nil)
	}

	now := time.Now()
	appointment := &model.Appointment{
		Base:             model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: req.ConsultationType,
		Status:           model.AppointmentStatusPending,
		Symptoms:         req.Symptoms,
		Patient:          req.Patient.Contact(),
	}
	if appointment.ConsultationType == model.ConsultationVideo {
		link := generateMeetLink()
		appointment.MeetLink = &link
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		if stderrors.Is(err, repository.ErrSlotBooked) {
			return nil, errors.Conflict("slot is already booked", err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notifyDoctor(ctx, appointment, doctor, slot)

	return appointment, nil
}

// Approve confirms a pending appointment and tells the patient. A repeated
// click on the email link re-saves the status and re-sends the email.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.resolve(ctx, id, model.AppointmentStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if appointment.Patient.HasEmail() {
		body := fmt.Sprintf(
			"Dear %s,\n\nYour appointment has been approved by the doctor.\n",
			appointment.Patient.Name,
		)
		if appointment.MeetLink != nil {
			body += fmt.Sprintf("\nJoin your video consultation here: %s\n", *appointment.MeetLink)
		}
		body += "\nBest regards,\nSmart Health Team\n"
		s.notifyPatient(ctx, appointment, "Appointment Approved - Smart Health", body)
	}

	return appointment, nil
}

// Reject cancels a pending appointment, frees the slot, and tells the
// patient. Like Approve, a repeated click re-saves and re-notifies.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.resolve(ctx, id, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.releaseSlot(ctx, appointment.SlotID)

	if appointment.Patient.HasEmail() {
		body := fmt.Sprintf(
			"Dear %s,\n\nUnfortunately the doctor is unable to take your appointment at the requested time. Please book a different slot.\n\nBest regards,\nSmart Health Team\n",
			appointment.Patient.Name,
		)
		s.notifyPatient(ctx, appointment, "Appointment Request Declined", body)
	}

	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, filters map[string]interface{}) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus applies an explicit status change, enforcing the state
// machine. Cancelling frees the slot.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	appointment, err := s.transition(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status == model.AppointmentStatusCancelled {
		s.releaseSlot(ctx, appointment.SlotID)
	}
	return appointment, nil
}

func (s *Service) SetMeetLink(ctx context.Context, id uuid.UUID, meetLink string) (*model.Appointment, error) {
	if err := s.appointments.UpdateMeetLink(ctx, id, meetLink); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to update meet link: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if appointment.Status == model.AppointmentStatusPending || appointment.Status == model.AppointmentStatusConfirmed {
		s.releaseSlot(ctx, appointment.SlotID)
	}
	return nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next model.AppointmentStatus) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransitionTo(next) {
		return nil, errors.Conflict(fmt.Sprintf("cannot change status from %s to %s", appointment.Status, next), nil)
	}
	return s.saveStatus(ctx, appointment, next)
}

// resolve is the email-link variant of transition: the same target status is
// accepted again so a doctor re-clicking a link re-saves and re-notifies
// instead of being told off.
func (s *Service) resolve(ctx context.Context, id uuid.UUID, next model.AppointmentStatus) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != next && !appointment.Status.CanTransitionTo(next) {
		return nil, errors.Conflict(fmt.Sprintf("cannot change status from %s to %s", appointment.Status, next), nil)
	}
	return s.saveStatus(ctx, appointment, next)
}

func (s *Service) saveStatus(ctx context.Context, appointment *model.Appointment, next model.AppointmentStatus) (*model.Appointment, error) {
	if err := s.appointments.UpdateStatus(ctx, appointment.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	appointment.Status = next
	return appointment, nil
}

func (s *Service) notifyDoctor(ctx context.Context, appointment *model.Appointment, doctor *model.Doctor, slot *model.Slot) {
	recipient := ""
	if doctor.Email != nil && *doctor.Email != "" {
		recipient = *doctor.Email
	} else if hospital, err := s.hospitals.Get(ctx, doctor.HospitalID); err == nil && hospital.Email != nil {
		recipient = *hospital.Email
	}
	if recipient == "" {
		s.logger.Warn().
			Str("doctor_id", doctor.ID.String()).
			Msg("no recipient address for appointment request, skipping notification")
		return
	}

	body := fmt.Sprintf(
		"Dear Dr. %s,\n\nYou have a new appointment request.\n\nPatient: %s\nDate: %s\nTime: %s\nConsultation: %s\nSymptoms: %s\n\nApprove: %s/api/appointments/%s/approve\nReject: %s/api/appointments/%s/reject\n\nBest regards,\nSmart Health Team\n",
		doctor.Name,
		appointment.Patient.Name,
		slot.Date,
		slot.Period,
		appointment.ConsultationType,
		appointment.Symptoms,
		s.backendURL, appointment.ID,
		s.backendURL, appointment.ID,
	)

	err := s.notifications.Send(ctx, &model.Notification{
		Channel:   model.NotificationChannelEmail,
		Recipient: recipient,
		Subject:   fmt.Sprintf("New Appointment Request: %s", appointment.Patient.Name),
		Content:   body,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("appointment_id", appointment.ID.String()).
			Msg("failed to enqueue doctor notification")
	}
}

func (s *Service) notifyPatient(ctx context.Context, appointment *model.Appointment, subject, body string) {
	err := s.notifications.Send(ctx, &model.Notification{
		Channel:   model.NotificationChannelEmail,
		Recipient: appointment.Patient.Email,
		Subject:   subject,
		Content:   body,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("appointment_id", appointment.ID.String()).
			Msg("failed to enqueue patient notification")
	}
}

func (s *Service) releaseSlot(ctx context.Context, slotID uuid.UUID) {
	if err := s.slots.Release(ctx, slotID); err != nil {
		s.logger.Error().Err(err).
			Str("slot_id", slotID.String()).
			Msg("failed to release slot")
	}
}

func generateMeetLink() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = meetLinkChars[rand.Intn(len(meetLinkChars))]
	}
	return "https://meet.google.com/" + string(b)
}
