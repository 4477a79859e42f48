package handlers

import (
	"context"

	"github.com/dhima/event-records/internal/api/response"
	"github.com/dhima/event-records/internal/logging"
	"github.com/dhima/event-records/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsProvider reports record totals.
type StatsProvider interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// MetricsHandler handles metrics requests.
type MetricsHandler struct {
	logger logging.Logger
	stats  StatsProvider
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(logger logging.Logger, stats StatsProvider) *MetricsHandler {
	return &MetricsHandler{
		logger: logger.With(zap.String("handler", "metrics")),
		stats:  stats,
	}
}

// Metrics godoc
// @Summary Get record counts
// @Description Returns the number of users, events and bookings in the store
// @Tags System
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("collect stats failed",
			zap.Error(err),
			zap.String("request_id", response.TraceID(c)),
		)
		response.InternalServerError(c, "internal server error")
		return
	}

	response.OK(c, stats)
}
