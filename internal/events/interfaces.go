package events

import (
	"context"

	"github.com/dhima/event-records/internal/models"
	platformEvents "github.com/dhima/event-records/platform/events"
)

// Store is the relational persistence the service needs.
type Store interface {
	GetUserBySubject(ctx context.Context, subject string) (*models.User, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	ListEventsByUser(ctx context.Context, userID string) ([]models.EventWithCount, error)
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
	GetEventByOwnerUsername(ctx context.Context, username, eventID string) (*models.EventDetails, error)
}

// Validator turns an untyped payload into a create input or a validation error.
type Validator interface {
	Validate(payload map[string]any) (models.EventInput, error)
}

// ChangePublisher emits record changes to the change feed.
type ChangePublisher interface {
	Publish(ctx context.Context, event platformEvents.ChangeEvent) error
}
