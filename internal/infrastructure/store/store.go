package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Store keeps the handful of values that bridge one command to the next:
// the session, in-flight checkout identifiers and flow snapshots.
// A zero expiration keeps the value until it is deleted.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	KeySession           = "session"
	KeyUserID            = "user_id"
	KeyCheckoutOrderID   = "checkout:order_id"
	KeyCheckoutSecret    = "checkout:client_secret"
	KeyPasswordResetFlow = "flow:password_reset"
	KeyEmailVerification = "flow:email_verification"
)

func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func SetJSON(ctx context.Context, s Store, key string, v interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw), expiration)
}
