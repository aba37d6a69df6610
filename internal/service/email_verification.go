package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
)

type VerificationStep string

const (
	VerificationUnsent   VerificationStep = "unsent"
	VerificationCodeSent VerificationStep = "code_sent"
	VerificationVerified VerificationStep = "verified"
)

const ResendCooldown = 60 * time.Second

const verificationSnapshotTTL = 15 * time.Minute

type EmailVerificationState struct {
	Step   VerificationStep `json:"step"`
	Email  string           `json:"email,omitempty"`
	SentAt time.Time        `json:"sentAt"`

	Error   string `json:"-"`
	Message string `json:"-"`
}

// EmailVerification sends a one-time code, lets the user resend it once the
// cooldown has passed and confirms it.
type EmailVerification struct {
	flow
	auth  gateway.AuthGateway
	store store.Store
	now   func() time.Time
	state EmailVerificationState
}

func NewEmailVerification(auth gateway.AuthGateway, st store.Store, m *metrics.ServiceMetrics) *EmailVerification {
	return &EmailVerification{
		flow:  newFlow(m),
		auth:  auth,
		store: st,
		now:   time.Now,
		state: EmailVerificationState{Step: VerificationUnsent},
	}
}

func (f *EmailVerification) State() EmailVerificationState {
	return f.state
}

func (f *EmailVerification) Restore(ctx context.Context) error {
	var snapshot EmailVerificationState
	err := store.GetJSON(ctx, f.store, store.KeyEmailVerification, &snapshot)
	if errors.Is(err, store.ErrNotFound) {
		f.state = EmailVerificationState{Step: VerificationUnsent}
		return nil
	}
	if err != nil {
		return err
	}
	f.state = snapshot
	return nil
}

// CooldownRemaining is zero once a new code may be requested.
func (f *EmailVerification) CooldownRemaining() time.Duration {
	if f.state.Step != VerificationCodeSent {
		return 0
	}
	remaining := f.state.SentAt.Add(ResendCooldown).Sub(f.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Send requests a code for email. Once the cooldown of a previous code has
// run out it starts over, possibly with a different address.
func (f *EmailVerification) Send(ctx context.Context, email string) error {
	ctx, span := f.tracer.Start(ctx, "EmailVerification.Send")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("EmailVerification.Send", status, time.Since(startTime).Seconds())
	}()

	switch f.state.Step {
	case VerificationUnsent:
	case VerificationCodeSent:
		if remaining := f.CooldownRemaining(); remaining > 0 {
			status = "cooldown"
			return f.fail(fmt.Errorf("%w (%s left)", ErrCooldown, remaining.Round(time.Second)))
		}
	default:
		status = "invalid_transition"
		return f.fail(fmt.Errorf("%w: send code in step %s", ErrInvalidTransition, f.state.Step))
	}

	email = strings.TrimSpace(email)
	if !validEmail(email) {
		status = "invalid"
		return f.fail(ErrInvalidEmail)
	}

	if err := f.send(ctx, email); err != nil {
		status = "error"
		span.RecordError(err)
		return err
	}
	return nil
}

// Resend issues a new code. Before the cooldown has run out it does nothing
// and reports false.
func (f *EmailVerification) Resend(ctx context.Context) (bool, error) {
	ctx, span := f.tracer.Start(ctx, "EmailVerification.Resend")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("EmailVerification.Resend", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != VerificationCodeSent {
		status = "invalid_transition"
		return false, f.fail(fmt.Errorf("%w: resend code in step %s", ErrInvalidTransition, f.state.Step))
	}
	if f.CooldownRemaining() > 0 {
		status = "cooldown"
		return false, nil
	}

	if err := f.send(ctx, f.state.Email); err != nil {
		status = "error"
		span.RecordError(err)
		return false, err
	}
	return true, nil
}

func (f *EmailVerification) Confirm(ctx context.Context, code string) error {
	ctx, span := f.tracer.Start(ctx, "EmailVerification.Confirm")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("EmailVerification.Confirm", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != VerificationCodeSent {
		status = "invalid_transition"
		return f.fail(fmt.Errorf("%w: confirm code in step %s", ErrInvalidTransition, f.state.Step))
	}

	code = strings.TrimSpace(code)
	if !validCode(code) {
		status = "invalid"
		return f.fail(ErrInvalidCode)
	}

	resp, err := f.auth.VerifyOTP(ctx, f.state.Email, code)
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "The code could not be verified")
		return err
	}

	f.state = EmailVerificationState{Step: VerificationVerified, Email: f.state.Email, Message: resp.Message}
	return f.store.Delete(ctx, store.KeyEmailVerification)
}

func (f *EmailVerification) send(ctx context.Context, email string) error {
	resp, err := f.auth.SendOTP(ctx, email)
	if err != nil {
		f.state.Error = gateway.Message(err, "Could not send the verification code")
		return err
	}

	f.state = EmailVerificationState{
		Step:    VerificationCodeSent,
		Email:   email,
		SentAt:  f.now(),
		Message: resp.Message,
	}
	return store.SetJSON(ctx, f.store, store.KeyEmailVerification, f.state, verificationSnapshotTTL)
}

func (f *EmailVerification) fail(err error) error {
	f.state.Error = err.Error()
	return err
}
