package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dhima/event-records/internal/models"
)

// GetUserBySubject finds the user linked to an identity provider subject.
func (c *MySQLClient) GetUserBySubject(ctx context.Context, subject string) (*models.User, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT id, clerk_user_id, username, name, email, image_url, created_at, updated_at
		 FROM users WHERE clerk_user_id = ?`,
		subject,
	)

	var u models.User
	var username, name, imageURL sql.NullString
	if err := row.Scan(&u.ID, &u.ClerkUserID, &username, &name, &u.Email, &imageURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Username = username.String
	u.Name = name.String
	u.ImageURL = imageURL.String
	return &u, nil
}
