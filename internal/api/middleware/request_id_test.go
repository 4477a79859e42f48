package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		*seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestID_WhenClientProvidesRequestID_ThenUsesProvidedID(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "client-provided-request-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-provided-request-id", seen)
	assert.Equal(t, "client-provided-request-id", w.Header().Get(RequestIDHeader))
}

func TestRequestID_WhenClientDoesNotProvideRequestID_ThenGeneratesNewID(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_WhenMultipleRequests_ThenEachGetsDifferentID(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	first := seen
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotEqual(t, first, seen)
}

func TestRequestID_WhenBlankOrOversized_ThenGeneratesNewID(t *testing.T) {
	for _, provided := range []string{"   ", strings.Repeat("x", maxRequestIDLength+1)} {
		var seen string
		router := newRequestIDRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, provided)
		router.ServeHTTP(httptest.NewRecorder(), req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	}
}

func TestGetRequestID_WhenMiddlewareAbsent_ThenEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
}
