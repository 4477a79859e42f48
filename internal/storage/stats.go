package storage

import (
	"context"
	"fmt"

	"github.com/dhima/event-records/internal/models"
)

// Stats returns record totals.
func (c *MySQLClient) Stats(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	if err := c.db.QueryRowContext(
		ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM bookings)`,
	).Scan(&s.Users, &s.Events, &s.Bookings); err != nil {
		return models.Stats{}, fmt.Errorf("count records: %w", err)
	}
	return s, nil
}
