package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhima/event-records/internal/logging"
	"github.com/dhima/event-records/internal/models"
	"github.com/dhima/event-records/internal/testutil/fakes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsRouter(stats StatsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", NewMetricsHandler(logging.NewNoOpLogger(), stats).Metrics)
	return router
}

func TestMetrics_WhenCalled_ThenReturns200WithCounts(t *testing.T) {
	store := fakes.NewFakeEventStore()
	store.AddUser(models.User{ID: "u1", ClerkUserID: "c1", Username: "alice"})
	store.AddBookings("e1", 4)

	w := httptest.NewRecorder()
	metricsRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var wrapper struct {
		Data models.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
	assert.Equal(t, models.Stats{Users: 1, Events: 0, Bookings: 4}, wrapper.Data)
}

func TestMetrics_WhenStoreFails_ThenReturns500(t *testing.T) {
	store := fakes.NewFakeEventStore()
	store.Err = errors.New("db down")

	w := httptest.NewRecorder()
	metricsRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
