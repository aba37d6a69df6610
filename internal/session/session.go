package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"market-client/internal/domain"
	"market-client/internal/infrastructure/store"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("admin role required")
)

// Session is the authenticated identity handed to every call site. The zero
// value is a logged out session.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

func (s Session) IsLoggedIn() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == domain.RoleAdmin
}

func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

// Owns reports whether the logged in user is the owner of a record.
func (s Session) Owns(userID string) bool {
	return userID != "" && s.UserID() == userID
}

// ExpiresAt reads the exp claim of the token without verifying the
// signature. Only for display.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// userIDClaims are the claim names backends commonly put the account id in.
var userIDClaims = []string{"id", "_id", "userId", "sub"}

// FromToken builds a session for a bearer token that did not come from a
// login in this store. The identity is read from the token's own claims,
// unverified; a token without an id claim yields a session without a user.
func FromToken(token string) Session {
	s := Session{Token: token}
	if token == "" {
		return s
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}
	for _, name := range userIDClaims {
		if id, ok := claims[name].(string); ok && id != "" {
			role, _ := claims["role"].(string)
			s.User = &domain.User{ID: id, Role: role}
			break
		}
	}
	return s
}

// Require gates protected operations on a bearer token being present.
func Require(s Session) error {
	if !s.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// RequireAdmin gates admin-only operations and output.
func RequireAdmin(s Session) error {
	if err := Require(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin allows the record owner or any admin.
func RequireOwnerOrAdmin(s Session, ownerID string) error {
	if err := Require(s); err != nil {
		return err
	}
	if s.Owns(ownerID) || s.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// Load returns the persisted session, or a logged out one when none is
// stored.
func Load(ctx context.Context, st store.Store) (Session, error) {
	var s Session
	err := store.GetJSON(ctx, st, store.KeySession, &s)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// Save persists the session and the user id. The session expires with the
// token when the token carries an exp claim.
func Save(ctx context.Context, st store.Store, s Session) error {
	var ttl time.Duration
	if exp, ok := s.ExpiresAt(); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return fmt.Errorf("save session: token already expired at %s", exp.Format(time.RFC3339))
		}
	}
	if err := store.SetJSON(ctx, st, store.KeySession, s, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if id := s.UserID(); id != "" {
		if err := st.Set(ctx, store.KeyUserID, id, ttl); err != nil {
			return fmt.Errorf("save user id: %w", err)
		}
	}
	return nil
}

func Clear(ctx context.Context, st store.Store) error {
	for _, key := range []string{store.KeySession, store.KeyUserID} {
		if err := st.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}
