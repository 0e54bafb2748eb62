package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/repository"
	appointmentService "github.com/smarthealth/booking-api/internal/service/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAppointmentRepo serves at most one appointment.

type stubAppointmentRepo struct {
	appt *model.Appointment
}

func (r stubAppointmentRepo) Create(context.Context, *model.Appointment) error { return nil }

func (r stubAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	if r.appt == nil || r.appt.ID != id {
		return nil, repository.ErrNotFound
	}
	copied := *r.appt
	return &copied, nil
}

func (r stubAppointmentRepo) List(context.Context, map[string]interface{}) ([]*model.Appointment, error) {
	return nil, nil
}

func (r stubAppointmentRepo) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus) error {
	return nil
}

func (r stubAppointmentRepo) UpdateMeetLink(context.Context, uuid.UUID, string) error { return nil }

func (r stubAppointmentRepo) Delete(context.Context, uuid.UUID) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, *model.Notification) error { return nil }

func newTestEngine(repo stubAppointmentRepo) *gin.Engine {
	nop := zerolog.Nop()
	svc := appointmentService.NewService(repo, nil, nil, nil, nopNotifier{}, "http://localhost:5000", &nop)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestApproveUnknownAppointmentReturns404(t *testing.T) {
	engine := newTestEngine(stubAppointmentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/"+uuid.NewString()+"/approve", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "could not be found")
}

func TestRejectCompletedAppointmentReturns409(t *testing.T) {
	appt := &model.Appointment{
		Base:   model.Base{ID: uuid.New()},
		Status: model.AppointmentStatusCompleted,
		Patient: model.PatientContact{
			Name:  "Guest User",
			Email: model.NotProvided,
			Phone: model.NotProvided,
		},
	}
	engine := newTestEngine(stubAppointmentRepo{appt: appt})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/"+appt.ID.String()+"/reject", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no longer be rejected")
}

func TestApproveMalformedIDReturns400(t *testing.T) {
	engine := newTestEngine(stubAppointmentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/not-a-uuid/approve", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not valid")
}
