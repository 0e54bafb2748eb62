package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers the root /health endpoint the frontend polls on load.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status":  "healthy",
		"service": "booking-api",
	}))
}
