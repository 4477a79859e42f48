package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhima/event-records/internal/auth"
	"github.com/dhima/event-records/internal/logging"
	"github.com/dhima/event-records/internal/models"
	"github.com/dhima/event-records/internal/storage"
	"github.com/dhima/event-records/pkg/clock"
	platformEvents "github.com/dhima/event-records/platform/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the event record operations. Every call is a single store
// round trip after the caller's user record has been resolved.
type Service struct {
	store     Store
	validator Validator
	publisher ChangePublisher
	logger    logging.Logger
	clock     clock.Clock
}

// NewService creates an event service stamped with the wall clock.
func NewService(store Store, validator Validator, publisher ChangePublisher, logger logging.Logger) *Service {
	return NewServiceWithClock(store, validator, publisher, logger, clock.RealClock{})
}

// NewServiceWithClock creates an event service with an explicit clock.
func NewServiceWithClock(store Store, validator Validator, publisher ChangePublisher, logger logging.Logger, clk clock.Clock) *Service {
	if publisher == nil {
		publisher = platformEvents.NopPublisher{}
	}
	return &Service{
		store:     store,
		validator: validator,
		publisher: publisher,
		logger:    logger.With(zap.String("service", "events")),
		clock:     clk,
	}
}

// CreateEvent validates payload and stores it as a new event owned by the caller.
func (s *Service) CreateEvent(ctx context.Context, caller auth.Identity, payload map[string]any) (*models.Event, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}

	input, err := s.validator.Validate(payload)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, caller)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event := &models.Event{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		IsPrivate:   input.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("user_id", user.ID),
	)
	s.publish(ctx, platformEvents.ChangeEvent{
		Type:       platformEvents.ChangeEventCreated,
		EventID:    event.ID,
		UserID:     user.ID,
		Title:      event.Title,
		OccurredAt: now,
	})

	return event, nil
}

// GetUserEvents lists every event the caller owns, newest first, with booking counts.
func (s *Service) GetUserEvents(ctx context.Context, caller auth.Identity) (*models.UserEvents, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}

	user, err := s.resolveUser(ctx, caller)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEventsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []models.EventWithCount{}
	}

	return &models.UserEvents{Events: events, Username: user.Username}, nil
}

// DeleteEvent removes an event owned by the caller.
func (s *Service) DeleteEvent(ctx context.Context, caller auth.Identity, eventID string) (*models.DeleteResult, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}

	user, err := s.resolveUser(ctx, caller)
	if err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.UserID != user.ID {
		s.logger.Warn("delete rejected for non-owner",
			zap.String("event_id", eventID),
			zap.String("user_id", user.ID),
		)
		return nil, ErrEventNotFoundOrUnauthorized
	}

	// A concurrent delete can win between the lookup and here; the loser reports not found.
	if err := s.store.DeleteEvent(ctx, eventID, user.ID); err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted",
		zap.String("event_id", eventID),
		zap.String("user_id", user.ID),
	)
	s.publish(ctx, platformEvents.ChangeEvent{
		Type:       platformEvents.ChangeEventDeleted,
		EventID:    eventID,
		UserID:     user.ID,
		OccurredAt: s.clock.Now(),
	})

	return &models.DeleteResult{Success: true}, nil
}

// GetEventDetails is the public lookup: the event must belong to the user with the given username.
func (s *Service) GetEventDetails(ctx context.Context, username, eventID string) (*models.EventDetails, error) {
	if username == "" || eventID == "" {
		return nil, ErrEventNotFound
	}

	details, err := s.store.GetEventByOwnerUsername(ctx, username, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event details: %w", err)
	}
	return details, nil
}

func (s *Service) resolveUser(ctx context.Context, caller auth.Identity) (*models.User, error) {
	user, err := s.store.GetUserBySubject(ctx, caller.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// publish is best effort: the store write already happened.
func (s *Service) publish(ctx context.Context, e platformEvents.ChangeEvent) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Error("failed to publish change event",
			zap.String("type", string(e.Type)),
			zap.String("event_id", e.EventID),
			zap.Error(err),
		)
	}
}
