package events

import "errors"

var (
	// ErrUnauthorized is returned when an operation needs a caller identity and has none.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when the caller has no user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound is returned by the public lookup.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventNotFoundOrUnauthorized is returned by delete for a missing event and for
	// someone else's event alike, so non-owners cannot probe which ids exist.
	ErrEventNotFoundOrUnauthorized = errors.New("event not found or unauthorized")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrEventNotFoundOrUnauthorized)
}
