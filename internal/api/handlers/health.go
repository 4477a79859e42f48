package handlers

import (
	"github.com/dhima/event-records/internal/api/response"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "event-records"
	serviceVersion = "1.0.0"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"event-records"`
	Version string `json:"version" example:"1.0.0"`
} // @name HealthResponse

// Health godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API service
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: serviceVersion,
	})
}
