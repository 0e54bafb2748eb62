package appointment

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/handler"
	"github.com/smarthealth/booking-api/internal/model"
	"github.com/smarthealth/booking-api/internal/service/appointment"
	"github.com/smarthealth/booking-api/pkg/errors"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.GET("/:id/approve", h.ApproveAppointment)
		appointments.GET("/:id/reject", h.RejectAppointment)
		appointments.PUT("/:id/status", h.UpdateStatus)
		appointments.PUT("/:id/meet-link", h.UpdateMeetLink)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := make(map[string]interface{})

	if id := c.Query("doctor_id"); id != "" {
		doctorID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
			return
		}
		filters["doctor_id"] = doctorID
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = model.AppointmentStatus(status)
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// ApproveAppointment serves the link embedded in the doctor's email, so it
// answers with a small HTML page instead of the JSON envelope.
func (h *Handler) ApproveAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondHTML(c, http.StatusBadRequest, "#d9534f", "Invalid Link", "This appointment link is not valid.")
		return
	}

	if _, err := h.service.Approve(c.Request.Context(), id); err != nil {
		h.respondHTMLError(c, err, "Unable to Approve", "approved")
		return
	}

	h.respondHTML(c, http.StatusOK, "#28a745", "Appointment Approved", "The patient has been notified. You can close this page.")
}

func (h *Handler) RejectAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondHTML(c, http.StatusBadRequest, "#d9534f", "Invalid Link", "This appointment link is not valid.")
		return
	}

	if _, err := h.service.Reject(c.Request.Context(), id); err != nil {
		h.respondHTMLError(c, err, "Unable to Reject", "rejected")
		return
	}

	h.respondHTML(c, http.StatusOK, "#dc3545", "Appointment Rejected", "The slot has been freed and the patient notified. You can close this page.")
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) UpdateMeetLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateMeetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.service.SetMeetLink(c.Request.Context(), id, req.MeetLink)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// respondHTMLError renders a service error as an HTML page, keeping the
// status the JSON surface would have used: 404 for a missing appointment,
// 409 for a state conflict.
func (h *Handler) respondHTMLError(c *gin.Context, err error, title, action string) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		status = appErr.StatusCode()
		switch status {
		case http.StatusNotFound:
			message = "This appointment could not be found."
		case http.StatusConflict:
			message = fmt.Sprintf("This appointment can no longer be %s.", action)
		}
	}

	h.respondHTML(c, status, "#d9534f", title, message)
}

func (h *Handler) respondHTML(c *gin.Context, status int, color, title, message string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s - Smart Health</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 80px;">
  <h1 style="color: %s;">%s</h1>
  <p>%s</p>
</body>
</html>`, title, color, title, message)
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}
