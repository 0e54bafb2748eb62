package slot

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/handler"
	"github.com/smarthealth/booking-api/internal/service/slot"
)

type Handler struct {
	service *slot.Service
}

func NewHandler(service *slot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/slots", h.ListSlots)
}

// ListSlots returns a doctor's slots for a date, creating the standard
// periods on first access.
func (h *Handler) ListSlots(c *gin.Context) {
	raw := c.Query("doctorId")
	if raw == "" {
		raw = c.Query("doctor_id")
	}
	doctorID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	slots, err := h.service.EnsureForDate(c.Request.Context(), doctorID, date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
