package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	"github.com/smarthealth/booking-api/pkg/errors"
)

type fakeStore struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]*model.Doctor
	hospitals    map[uuid.UUID]*model.Hospital
	slots        map[uuid.UUID]*model.Slot
	appointments map[uuid.UUID]*model.Appointment
	sent         []*model.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		doctors:      make(map[uuid.UUID]*model.Doctor),
		hospitals:    make(map[uuid.UUID]*model.Hospital),
		slots:        make(map[uuid.UUID]*model.Slot),
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

// DoctorRepository

type fakeDoctorRepo struct{ s *fakeStore }

func (r fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.s.doctors[d.ID] = d
	return nil
}

func (r fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (r fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) { return nil, nil }

func (r fakeDoctorRepo) ListByHospitals(_ context.Context, _ []uuid.UUID, _ string) ([]*model.Doctor, error) {
	return nil, nil
}

// HospitalRepository

type fakeHospitalRepo struct{ s *fakeStore }

func (r fakeHospitalRepo) Create(_ context.Context, h *model.Hospital) error {
	r.s.hospitals[h.ID] = h
	return nil
}

func (r fakeHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	h, ok := r.s.hospitals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return h, nil
}

func (r fakeHospitalRepo) List(_ context.Context) ([]*model.Hospital, error) { return nil, nil }

func (r fakeHospitalRepo) ListByCity(_ context.Context, _ string) ([]*model.Hospital, error) {
	return nil, nil
}

// SlotRepository

type fakeSlotRepo struct{ s *fakeStore }

func (r fakeSlotRepo) Get(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r fakeSlotRepo) ListForDate(_ context.Context, _ uuid.UUID, _ string) ([]*model.Slot, error) {
	return nil, nil
}

func (r fakeSlotRepo) CreateBatch(_ context.Context, slots []*model.Slot) error {
	for _, s := range slots {
		r.s.slots[s.ID] = s
	}
	return nil
}

func (r fakeSlotRepo) Release(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slot, ok := r.s.slots[id]; ok {
		slot.IsBooked = false
	}
	return nil
}

// AppointmentRepository, with the same book-or-fail semantics as the real
// transaction: the slot flips to booked and the row is inserted atomically.

type fakeAppointmentRepo struct{ s *fakeStore }

func (r fakeAppointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[appt.SlotID]
	if !ok {
		return repository.ErrNotFound
	}
	if slot.IsBooked {
		return repository.ErrSlotBooked
	}
	slot.IsBooked = true
	r.s.appointments[appt.ID] = appt
	return nil
}

func (r fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r fakeAppointmentRepo) List(_ context.Context, _ map[string]interface{}) ([]*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*model.Appointment
	for _, a := range r.s.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt, ok := r.s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	appt.Status = status
	return nil
}

func (r fakeAppointmentRepo) UpdateMeetLink(_ context.Context, id uuid.UUID, meetLink string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt, ok := r.s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	appt.MeetLink = &meetLink
	return nil
}

func (r fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

// notification.Service

type fakeNotifier struct{ s *fakeStore }

func (n fakeNotifier) Send(_ context.Context, notification *model.Notification) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	n.s.sent = append(n.s.sent, notification)
	return nil
}

func newTestService(s *fakeStore) *Service {
	nop := zerolog.Nop()
	return NewService(
		fakeAppointmentRepo{s},
		fakeSlotRepo{s},
		fakeDoctorRepo{s},
		fakeHospitalRepo{s},
		fakeNotifier{s},
		"http://localhost:5000",
		&nop,
	)
}

func seedDoctorAndSlot(s *fakeStore, doctorEmail *string) (*model.Doctor, *model.Slot) {
	hospital := &model.Hospital{Base: model.Base{ID: uuid.New()}, Name: "Anjali Hospital", City: "bhimavaram"}
	s.hospitals[hospital.ID] = hospital

	doctor := &model.Doctor{
		Base:           model.Base{ID: uuid.New()},
		Name:           "L. Swathi",
		Specialization: "Dermatologist",
		HospitalID:     hospital.ID,
		Email:          doctorEmail,
	}
	s.doctors[doctor.ID] = doctor

	slot := &model.Slot{
		Base:     model.Base{ID: uuid.New()},
		DoctorID: doctor.ID,
		Date:     "2026-09-15",
		Period:   model.SlotPeriodMorning,
	}
	s.slots[slot.ID] = slot

	return doctor, slot
}

func strPtr(v string) *string { return &v }

func TestCreateBooksSlotAndNotifiesDoctor(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationVideo,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210"}},
		Symptoms:         "rash",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	require.NotNil(t, appt.MeetLink)
	assert.Regexp(t, `^https://meet\.google\.com/[a-z0-9]{10}$`, *appt.MeetLink)
	assert.True(t, store.slots[slot.ID].IsBooked)

	require.Len(t, store.sent, 1)
	assert.Equal(t, "swathi@anjalihospital.in", store.sent[0].Recipient)
	assert.Contains(t, store.sent[0].Subject, "New Appointment Request")
	assert.Contains(t, store.sent[0].Content, appt.ID.String())
}

func TestCreateInPersonHasNoMeetLink(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, nil)
	store.hospitals[doctor.HospitalID].Email = strPtr("info@anjalihospital.in")
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Ravi", Email: model.NotProvided, Phone: model.NotProvided}},
	})
	require.NoError(t, err)
	assert.Nil(t, appt.MeetLink)

	// Doctor has no address, so the hospital front desk is notified.
	require.Len(t, store.sent, 1)
	assert.Equal(t, "info@anjalihospital.in", store.sent[0].Recipient)
}

func TestCreateWithoutPatientGetsDefaults(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	// A body with no "patient" key binds to a zero PatientInput, which must
	// resolve to the same defaults an empty object gets.
	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
	})
	require.NoError(t, err)

	assert.Equal(t, "Guest User", appt.Patient.Name)
	assert.Equal(t, model.NotProvided, appt.Patient.Email)
	assert.Equal(t, model.NotProvided, appt.Patient.Phone)
	assert.False(t, appt.Patient.HasEmail())
}

func TestCreateBookedSlotConflicts(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	store.slots[slot.ID].IsBooked = true
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationVideo,
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestCreateConcurrentOnlyOneWins(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	const attempts = 20
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
				DoctorID:         doctor.ID,
				SlotID:           slot.ID,
				ConsultationType: model.ConsultationInPerson,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, store.appointments, 1)
}

func TestApproveNotifiesPatient(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationVideo,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210"}},
	})
	require.NoError(t, err)
	store.sent = nil

	approved, err := svc.Approve(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, approved.Status)

	require.Len(t, store.sent, 1)
	assert.Equal(t, "ravi@example.com", store.sent[0].Recipient)
	assert.Contains(t, store.sent[0].Content, *appt.MeetLink)
}

func TestApproveSuppressesSentinelEmail(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Guest User", Email: model.NotProvided, Phone: model.NotProvided}},
	})
	require.NoError(t, err)
	store.sent = nil

	_, err = svc.Approve(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Empty(t, store.sent)
}

func TestApproveTwiceRenotifies(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210"}},
	})
	require.NoError(t, err)
	store.sent = nil

	// A doctor re-clicking the approve link gets the same confirmation and
	// the patient gets the email again.
	for i := 0; i < 2; i++ {
		approved, err := svc.Approve(context.Background(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusConfirmed, approved.Status)
	}
	assert.Len(t, store.sent, 2)
}

func TestApproveAfterRejectConflicts(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), appt.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), appt.ID)
	require.NoError(t, err) // confirmed -> cancelled is allowed

	_, err = svc.Approve(context.Background(), appt.ID)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestRejectReleasesSlot(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
		Patient:          model.PatientInput{PatientContact: model.PatientContact{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210"}},
	})
	require.NoError(t, err)
	assert.True(t, store.slots[slot.ID].IsBooked)
	store.sent = nil

	rejected, err := svc.Reject(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, rejected.Status)
	assert.False(t, store.slots[slot.ID].IsBooked)

	require.Len(t, store.sent, 1)
	assert.Equal(t, "Appointment Request Declined", store.sent[0].Subject)
}

func TestDeletePendingReleasesSlot(t *testing.T) {
	store := newFakeStore()
	doctor, slot := seedDoctorAndSlot(store, strPtr("swathi@anjalihospital.in"))
	svc := newTestService(store)

	appt, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		DoctorID:         doctor.ID,
		SlotID:           slot.ID,
		ConsultationType: model.ConsultationInPerson,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), appt.ID))
	assert.Empty(t, store.appointments)
	assert.False(t, store.slots[slot.ID].IsBooked)
}
