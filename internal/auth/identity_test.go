package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_WhenNothingStored_ThenAnonymous(t *testing.T) {
	id := FromContext(context.Background())

	assert.Equal(t, Anonymous, id)
	assert.False(t, id.Authenticated())
}

func TestWithIdentity_WhenStored_ThenRoundTrips(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Subject: "user_2abc"})

	id := FromContext(ctx)

	assert.Equal(t, "user_2abc", id.Subject)
	assert.True(t, id.Authenticated())
}
