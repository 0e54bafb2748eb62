package lab

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smarthealth/booking-api/internal/handler"
	"github.com/smarthealth/booking-api/internal/service/lab"
)

type Handler struct {
	service *lab.Service
}

func NewHandler(service *lab.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	labs := r.Group("/labs")
	{
		labs.GET("", h.ListLabs)
		labs.GET("/:id", h.GetLab)
	}
}

func (h *Handler) ListLabs(c *gin.Context) {
	labs, err := h.service.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(labs))
}

func (h *Handler) GetLab(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lab ID"))
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
