package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dhima/event-records/internal/api/response"
	"github.com/dhima/event-records/internal/auth"
	"github.com/dhima/event-records/internal/events"
	"github.com/dhima/event-records/internal/logging"
	"github.com/dhima/event-records/internal/models"
	"github.com/dhima/event-records/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventService is the set of event record operations the handler exposes.
type EventService interface {
	CreateEvent(ctx context.Context, caller auth.Identity, payload map[string]any) (*models.Event, error)
	GetUserEvents(ctx context.Context, caller auth.Identity) (*models.UserEvents, error)
	DeleteEvent(ctx context.Context, caller auth.Identity, eventID string) (*models.DeleteResult, error)
	GetEventDetails(ctx context.Context, username, eventID string) (*models.EventDetails, error)
}

// EventHandler handles event record requests.
type EventHandler struct {
	logger  logging.Logger
	service EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(logger logging.Logger, service EventService) *EventHandler {
	return &EventHandler{
		logger:  logger.With(zap.String("handler", "event")),
		service: service,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a bookable event owned by the authenticated caller.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event definition"
// @Success 201 {object} models.Event
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Caller has no user record"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid create event request",
			zap.Error(err),
			zap.String("request_id", response.TraceID(c)),
		)
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	caller := auth.FromContext(c.Request.Context())
	result, err := h.service.CreateEvent(c.Request.Context(), caller, payload)
	if h.handleServiceError(c, err, "create event") {
		return
	}

	response.Created(c, result, "event created successfully")
}

// ListEvents godoc
// @Summary List the caller's events
// @Description Returns every event the caller owns, newest first, with booking counts.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserEvents
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Caller has no user record"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	caller := auth.FromContext(c.Request.Context())
	result, err := h.service.GetUserEvents(c.Request.Context(), caller)
	if h.handleServiceError(c, err, "list events") {
		return
	}

	response.OK(c, result)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event owned by the caller. Missing events and events owned by someone else are reported alike.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} models.DeleteResult
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Event not found or unauthorized"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	caller := auth.FromContext(c.Request.Context())
	eventID := c.Param("id")

	result, err := h.service.DeleteEvent(c.Request.Context(), caller, eventID)
	if h.handleServiceError(c, err, "delete event") {
		return
	}

	response.Success(c, http.StatusOK, result, "event deleted successfully")
}

// GetEventDetails godoc
// @Summary Get public event details
// @Description Returns an event together with its owner, looked up by the owner's username.
// @Tags Events
// @Produce json
// @Param username path string true "Owner username"
// @Param id path string true "Event ID"
// @Success 200 {object} models.EventDetails
// @Failure 404 {object} response.ErrorResponse "Event not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/users/{username}/events/{id} [get]
func (h *EventHandler) GetEventDetails(c *gin.Context) {
	result, err := h.service.GetEventDetails(c.Request.Context(), c.Param("username"), c.Param("id"))
	if h.handleServiceError(c, err, "get event details") {
		return
	}

	response.OK(c, result)
}

// CreateEventRequest documents the create payload. The handler binds to a raw map and the
// schema validator enforces these rules.
type CreateEventRequest struct {
	Title       string  `json:"title" example:"Intro Call" minLength:"1" maxLength:"100"`
	Description *string `json:"description,omitempty" example:"A quick 30 minute chat" minLength:"1" maxLength:"500"`
	Duration    int     `json:"duration" example:"30" minimum:"1"`
	IsPrivate   bool    `json:"isPrivate" example:"false"`
} // @name CreateEventRequest

func (h *EventHandler) handleServiceError(c *gin.Context, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, events.ErrUnauthorized):
		response.Unauthorized(c, "unauthorized")
	case errors.As(err, &validationErr):
		response.ValidationErrors(c, validationErr.Fields)
	case events.IsNotFound(err):
		response.NotFound(c, err.Error())
	default:
		h.logger.Error(operation+" failed",
			zap.Error(err),
			zap.String("request_id", response.TraceID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}
