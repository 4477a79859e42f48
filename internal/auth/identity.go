// Package auth resolves the caller identity of a request. It never authenticates
// users itself; tokens are issued and signed by an external OpenID Connect provider.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a token fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated subject making a request.
// The zero value means no identity.
type Identity struct {
	Subject string
}

// Anonymous is the absent identity.
var Anonymous = Identity{}

// Authenticated reports whether a subject is present.
func (i Identity) Authenticated() bool {
	return i.Subject != ""
}

// Verifier turns a raw bearer token into an identity.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}
