package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, KeySession)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyUserID, "u1", 0))
	v, err := s.Get(ctx, KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)

	require.NoError(t, s.Delete(ctx, KeyUserID))
	_, err = s.Get(ctx, KeyUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, KeyCheckoutSecret, "pi_secret", time.Minute))

	now = now.Add(30 * time.Second)
	_, err := s.Get(ctx, KeyCheckoutSecret)
	require.NoError(t, err)

	now = now.Add(31 * time.Second)
	_, err = s.Get(ctx, KeyCheckoutSecret)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type snapshot struct {
		State string `json:"state"`
		Email string `json:"email"`
	}

	require.NoError(t, SetJSON(ctx, s, KeyPasswordResetFlow, snapshot{State: "verifying", Email: "a@b.c"}, 0))

	var got snapshot
	require.NoError(t, GetJSON(ctx, s, KeyPasswordResetFlow, &got))
	assert.Equal(t, "verifying", got.State)

	require.NoError(t, s.Set(ctx, KeyEmailVerification, "{broken", 0))
	assert.Error(t, GetJSON(ctx, s, KeyEmailVerification, &got))
}
