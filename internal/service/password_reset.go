package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
)

type ResetStep string

const (
	ResetInput     ResetStep = "input"
	ResetVerifying ResetStep = "verifying"
	ResetResetting ResetStep = "resetting"
	ResetDone      ResetStep = "done"
)

const resetSnapshotTTL = 15 * time.Minute

type PasswordResetState struct {
	Step  ResetStep `json:"step"`
	Email string    `json:"email,omitempty"`
	Code  string    `json:"code,omitempty"`

	Error   string `json:"-"`
	Message string `json:"-"`
}

// PasswordReset is the forgot-password sequence: request a code by email,
// verify it, then set a new password.
type PasswordReset struct {
	flow
	auth  gateway.AuthGateway
	store store.Store
	state PasswordResetState
}

func NewPasswordReset(auth gateway.AuthGateway, st store.Store, m *metrics.ServiceMetrics) *PasswordReset {
	return &PasswordReset{
		flow:  newFlow(m),
		auth:  auth,
		store: st,
		state: PasswordResetState{Step: ResetInput},
	}
}

func (f *PasswordReset) State() PasswordResetState {
	return f.state
}

// Restore picks up a sequence persisted by an earlier process.
func (f *PasswordReset) Restore(ctx context.Context) error {
	var snapshot PasswordResetState
	err := store.GetJSON(ctx, f.store, store.KeyPasswordResetFlow, &snapshot)
	if errors.Is(err, store.ErrNotFound) {
		f.state = PasswordResetState{Step: ResetInput}
		return nil
	}
	if err != nil {
		return err
	}
	f.state = snapshot
	return nil
}

func (f *PasswordReset) RequestCode(ctx context.Context, email string) error {
	ctx, span := f.tracer.Start(ctx, "PasswordReset.RequestCode")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("PasswordReset.RequestCode", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != ResetInput && f.state.Step != ResetVerifying {
		status = "invalid_transition"
		return f.fail(fmt.Errorf("%w: request code in step %s", ErrInvalidTransition, f.state.Step))
	}

	email = strings.TrimSpace(email)
	if !validEmail(email) {
		status = "invalid"
		return f.fail(ErrInvalidEmail)
	}

	resp, err := f.auth.ForgotPassword(ctx, email)
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "Could not send the reset code")
		return err
	}

	f.state = PasswordResetState{Step: ResetVerifying, Email: email, Message: resp.Message}
	span.SetAttributes(attribute.String("reset.step", string(f.state.Step)))
	return f.persist(ctx)
}

func (f *PasswordReset) VerifyCode(ctx context.Context, code string) error {
	ctx, span := f.tracer.Start(ctx, "PasswordReset.VerifyCode")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("PasswordReset.VerifyCode", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != ResetVerifying {
		status = "invalid_transition"
		return f.fail(fmt.Errorf("%w: verify code in step %s", ErrInvalidTransition, f.state.Step))
	}

	code = strings.TrimSpace(code)
	if !validCode(code) {
		status = "invalid"
		return f.fail(ErrInvalidCode)
	}

	resp, err := f.auth.VerifyResetCode(ctx, f.state.Email, code)
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "The code could not be verified")
		return err
	}

	f.state = PasswordResetState{Step: ResetResetting, Email: f.state.Email, Code: code, Message: resp.Message}
	return f.persist(ctx)
}

func (f *PasswordReset) Reset(ctx context.Context, password, confirm string) error {
	ctx, span := f.tracer.Start(ctx, "PasswordReset.Reset")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("PasswordReset.Reset", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != ResetResetting {
		status = "invalid_transition"
		return f.fail(fmt.Errorf("%w: reset password in step %s", ErrInvalidTransition, f.state.Step))
	}
	if password == "" {
		status = "invalid"
		return f.fail(ErrEmptyPassword)
	}
	if password != confirm {
		status = "invalid"
		return f.fail(ErrPasswordMismatch)
	}

	resp, err := f.auth.ResetPassword(ctx, f.state.Email, f.state.Code, password)
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "The password could not be reset")
		return err
	}

	f.state = PasswordResetState{Step: ResetDone, Email: f.state.Email, Message: resp.Message}
	return f.store.Delete(ctx, store.KeyPasswordResetFlow)
}

func (f *PasswordReset) fail(err error) error {
	f.state.Error = err.Error()
	return err
}

func (f *PasswordReset) persist(ctx context.Context) error {
	return store.SetJSON(ctx, f.store, store.KeyPasswordResetFlow, f.state, resetSnapshotTTL)
}
