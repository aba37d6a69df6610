package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/infrastructure/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newVerification(t *testing.T, auth *fakeAuth, st store.Store, clock *fakeClock) *EmailVerification {
	f := NewEmailVerification(auth, st, testMetrics(t))
	f.now = clock.Now
	return f
}

func TestEmailVerificationFlow(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	f := newVerification(t, auth, store.NewMemoryStore(), clock)

	assert.Equal(t, VerificationUnsent, f.State().Step)
	require.NoError(t, f.Send(ctx, "ann@example.com"))
	assert.Equal(t, VerificationCodeSent, f.State().Step)
	assert.Equal(t, ResendCooldown, f.CooldownRemaining())

	assert.ErrorIs(t, f.Confirm(ctx, "12"), ErrInvalidCode)
	assert.Equal(t, VerificationCodeSent, f.State().Step)

	require.NoError(t, f.Confirm(ctx, "000111"))
	assert.Equal(t, VerificationVerified, f.State().Step)
	assert.Equal(t, "000111", auth.lastCode)
}

func TestResendIsNoOpDuringCooldown(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	f := newVerification(t, auth, store.NewMemoryStore(), clock)

	require.NoError(t, f.Send(ctx, "ann@example.com"))
	require.Equal(t, 1, auth.count("SendOTP"))

	clock.Advance(30 * time.Second)
	for i := 0; i < 3; i++ {
		sent, err := f.Resend(ctx)
		require.NoError(t, err)
		assert.False(t, sent)
	}
	assert.Equal(t, 1, auth.count("SendOTP"))
	assert.Equal(t, 30*time.Second, f.CooldownRemaining())

	clock.Advance(30 * time.Second)
	sent, err := f.Resend(ctx)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, 2, auth.count("SendOTP"))

	// the cooldown restarts with the new code
	sent, err = f.Resend(ctx)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, 2, auth.count("SendOTP"))
}

func TestResendCooldownSurvivesRestore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	first := newVerification(t, &fakeAuth{}, st, clock)
	require.NoError(t, first.Send(ctx, "ann@example.com"))

	clock.Advance(10 * time.Second)
	auth := &fakeAuth{}
	second := newVerification(t, auth, st, clock)
	require.NoError(t, second.Restore(ctx))

	sent, err := second.Resend(ctx)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, 0, auth.total())
	assert.Equal(t, 50*time.Second, second.CooldownRemaining())
}

func TestEmailVerificationRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	clock := &fakeClock{now: time.Now()}
	f := newVerification(t, auth, store.NewMemoryStore(), clock)

	_, err := f.Resend(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, f.Send(ctx, "nope"), ErrInvalidEmail)
	assert.Equal(t, VerificationUnsent, f.State().Step)
	assert.Equal(t, 0, auth.total())
}

func TestSendStartsOverAfterCooldown(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	auth := &fakeAuth{}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	first := newVerification(t, auth, st, clock)
	require.NoError(t, first.Send(ctx, "typo@exmaple.com"))

	second := newVerification(t, auth, st, clock)
	require.NoError(t, second.Restore(ctx))
	assert.ErrorIs(t, second.Send(ctx, "ann@example.com"), ErrCooldown)
	assert.Equal(t, 1, auth.count("SendOTP"))

	clock.Advance(ResendCooldown)
	require.NoError(t, second.Send(ctx, "ann@example.com"))
	assert.Equal(t, 2, auth.count("SendOTP"))
	assert.Equal(t, "ann@example.com", second.State().Email)

	third := newVerification(t, auth, st, clock)
	require.NoError(t, third.Restore(ctx))
	assert.Equal(t, "ann@example.com", third.State().Email)
	assert.Equal(t, VerificationCodeSent, third.State().Step)
}

// ttlStore records the expiration of every write.
type ttlStore struct {
	store.Store
	ttls map[string]time.Duration
}

func (s *ttlStore) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	s.ttls[key] = expiration
	return s.Store.Set(ctx, key, value, expiration)
}

func TestVerificationSnapshotExpires(t *testing.T) {
	st := &ttlStore{Store: store.NewMemoryStore(), ttls: make(map[string]time.Duration)}
	f := newVerification(t, &fakeAuth{}, st, &fakeClock{now: time.Now()})

	require.NoError(t, f.Send(context.Background(), "ann@example.com"))

	assert.Equal(t, verificationSnapshotTTL, st.ttls[store.KeyEmailVerification])
}
