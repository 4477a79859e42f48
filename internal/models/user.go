package models

import "time"

// User is a registered account, keyed internally by ID and externally by the identity provider subject.
type User struct {
	ID          string    `json:"id"`
	ClerkUserID string    `json:"clerkUserId"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Owner is the subset of a user exposed on public event pages.
type Owner struct {
	Name     string `json:"name" example:"Alice Smith"`
	Email    string `json:"email" example:"alice@example.com"`
	ImageURL string `json:"imageUrl" example:"https://img.example.com/alice.png"`
} // @name Owner
