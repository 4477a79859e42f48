package fakes

import (
	"context"

	"github.com/dhima/event-records/internal/auth"
)

// FakeVerifier maps raw tokens to subjects. Unknown tokens are rejected.
type FakeVerifier struct {
	Tokens map[string]string
}

func (v *FakeVerifier) Verify(_ context.Context, rawToken string) (auth.Identity, error) {
	subject, ok := v.Tokens[rawToken]
	if !ok {
		return auth.Anonymous, auth.ErrInvalidToken
	}
	return auth.Identity{Subject: subject}, nil
}
