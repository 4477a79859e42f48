package models

import "time"

// Event is a schedulable offering owned by a single user.
type Event struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID      string    `json:"userId" example:"2b7c1d6e-1b43-4a55-9a8f-9d54b34fbd2a"`
	Title       string    `json:"title" example:"Intro Call"`
	Description *string   `json:"description,omitempty" example:"A quick 30 minute chat"`
	Duration    int       `json:"duration" example:"30"`
	IsPrivate   bool      `json:"isPrivate" example:"false"`
	CreatedAt   time.Time `json:"createdAt" example:"2025-11-05T10:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2025-11-05T10:00:00Z"`
} // @name Event

// EventInput is a validated create payload.
type EventInput struct {
	Title       string
	Description *string
	Duration    int
	IsPrivate   bool
}

// EventWithCount is an event annotated with its number of bookings.
type EventWithCount struct {
	Event
	BookingCount int64 `json:"bookingCount" example:"3"`
} // @name EventWithCount

// UserEvents is the owner listing: every event of the caller plus the caller's public username.
type UserEvents struct {
	Events   []EventWithCount `json:"events"`
	Username string           `json:"username" example:"alice"`
} // @name UserEvents

// EventDetails is the public view of an event together with its owner.
type EventDetails struct {
	Event
	User Owner `json:"user"`
} // @name EventDetails

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Success bool `json:"success" example:"true"`
} // @name DeleteResult

// Stats holds record totals reported by the metrics endpoint.
type Stats struct {
	Users    int64 `json:"usersCount" example:"12"`
	Events   int64 `json:"eventsCount" example:"40"`
	Bookings int64 `json:"bookingsCount" example:"118"`
} // @name Stats
