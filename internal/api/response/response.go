// Package response holds the JSON envelopes every endpoint answers with.
package response

import (
	"net/http"

	"github.com/dhima/event-records/internal/api/middleware"
	"github.com/dhima/event-records/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse wraps a successful payload.
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
} // @name SuccessResponse

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
} // @name ErrorResponse

// Success sends a successful response with data.
func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, SuccessResponse{
		Data:    data,
		Message: message,
	})
}

// Error sends an error response tagged with the request's trace id.
func Error(c *gin.Context, statusCode int, err string, details interface{}) {
	c.JSON(statusCode, ErrorResponse{
		Error:   err,
		Details: details,
		TraceID: TraceID(c),
	})
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context, err string, details interface{}) {
	Error(c, http.StatusBadRequest, err, details)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, err string) {
	Error(c, http.StatusUnauthorized, err, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, err string) {
	Error(c, http.StatusNotFound, err, nil)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, err string) {
	Error(c, http.StatusInternalServerError, err, nil)
}

// Created sends a 201 Created response.
func Created(c *gin.Context, data interface{}, message string) {
	Success(c, http.StatusCreated, data, message)
}

// OK sends a 200 OK response.
func OK(c *gin.Context, data interface{}) {
	Success(c, http.StatusOK, data, "")
}

// ValidationErrors sends a 400 with one entry per rejected field.
func ValidationErrors(c *gin.Context, fields []validation.FieldError) {
	BadRequest(c, "validation failed", fields)
}

// TraceID returns the request id, or a fresh one when the request was not tagged.
func TraceID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return uuid.New().String()
}
