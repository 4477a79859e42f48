package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dhima/event-records/internal/models"
)

const eventColumns = `e.id, e.user_id, e.title, e.description, e.duration, e.is_private, e.created_at, e.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// CreateEvent inserts a fully populated event.
func (c *MySQLClient) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, err := c.db.ExecContext(
		ctx,
		`INSERT INTO events (id, user_id, title, description, duration, is_private, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.UserID,
		event.Title,
		nullString(event.Description),
		event.Duration,
		event.IsPrivate,
		event.CreatedAt,
		event.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetEvent fetches an event by id.
func (c *MySQLClient) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = ?`, eventID)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return e, nil
}

// ListEventsByUser returns every event owned by userID, newest first, with booking counts.
func (c *MySQLClient) ListEventsByUser(ctx context.Context, userID string) ([]models.EventWithCount, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT `+eventColumns+`,
			(SELECT COUNT(*) FROM bookings b WHERE b.event_id = e.id) AS booking_count
		 FROM events e
		 WHERE e.user_id = ?
		 ORDER BY e.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]models.EventWithCount, 0)
	for rows.Next() {
		var ev models.EventWithCount
		var description sql.NullString
		if err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.Title, &description, &ev.Duration, &ev.IsPrivate, &ev.CreatedAt, &ev.UpdatedAt,
			&ev.BookingCount,
		); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		ev.Description = stringPtr(description)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event owned by ownerID. Bookings go with it via the foreign key.
func (c *MySQLClient) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, eventID, ownerID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// GetEventByOwnerUsername fetches an event only if it belongs to the user with the given username.
func (c *MySQLClient) GetEventByOwnerUsername(ctx context.Context, username, eventID string) (*models.EventDetails, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT `+eventColumns+`, u.name, u.email, u.image_url
		 FROM events e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.id = ? AND u.username = ?`,
		eventID,
		username,
	)

	var d models.EventDetails
	var description, name, imageURL sql.NullString
	if err := row.Scan(
		&d.ID, &d.UserID, &d.Title, &description, &d.Duration, &d.IsPrivate, &d.CreatedAt, &d.UpdatedAt,
		&name, &d.User.Email, &imageURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event details: %w", err)
	}
	d.Description = stringPtr(description)
	d.User.Name = name.String
	d.User.ImageURL = imageURL.String
	return &d, nil
}

func scanEvent(row scanner) (*models.Event, error) {
	var e models.Event
	var description sql.NullString
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &description, &e.Duration, &e.IsPrivate, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Description = stringPtr(description)
	return &e, nil
}
