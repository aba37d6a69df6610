package service

import (
	"context"
	"strings"
	"time"

	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
	"market-client/internal/session"
)

// Auth turns login and registration answers into a persisted session.
type Auth struct {
	flow
	gw    gateway.AuthGateway
	store store.Store
}

func NewAuth(gw gateway.AuthGateway, st store.Store, m *metrics.ServiceMetrics) *Auth {
	return &Auth{flow: newFlow(m), gw: gw, store: st}
}

func (a *Auth) Login(ctx context.Context, email, password string) (session.Session, error) {
	ctx, span := a.tracer.Start(ctx, "Auth.Login")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		a.metrics.Observe("Auth.Login", status, time.Since(startTime).Seconds())
	}()

	email = strings.TrimSpace(email)
	if !validEmail(email) {
		status = "invalid"
		return session.Session{}, ErrInvalidEmail
	}
	if password == "" {
		status = "invalid"
		return session.Session{}, ErrEmptyPassword
	}

	resp, err := a.gw.Login(ctx, email, password)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return session.Session{}, err
	}

	return a.establish(ctx, resp)
}

// Register creates the account. confirm must repeat the password.
func (a *Auth) Register(ctx context.Context, in gateway.RegisterInput, confirm string) (session.Session, error) {
	ctx, span := a.tracer.Start(ctx, "Auth.Register")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		a.metrics.Observe("Auth.Register", status, time.Since(startTime).Seconds())
	}()

	in.Email = strings.TrimSpace(in.Email)
	switch {
	case !validEmail(in.Email):
		status = "invalid"
		return session.Session{}, ErrInvalidEmail
	case in.Password == "":
		status = "invalid"
		return session.Session{}, ErrEmptyPassword
	case in.Password != confirm:
		status = "invalid"
		return session.Session{}, ErrPasswordMismatch
	}

	resp, err := a.gw.Register(ctx, in)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return session.Session{}, err
	}

	return a.establish(ctx, resp)
}

func (a *Auth) Logout(ctx context.Context) error {
	return session.Clear(ctx, a.store)
}

func (a *Auth) establish(ctx context.Context, resp *gateway.AuthResponse) (session.Session, error) {
	user := resp.User
	s := session.Session{Token: resp.Token, User: &user}
	if err := session.Save(ctx, a.store, s); err != nil {
		return session.Session{}, err
	}
	return s, nil
}
