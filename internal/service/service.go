package service

import (
	"errors"
	"net/mail"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"market-client/internal/infrastructure/metrics"
)

var (
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrInvalidCode        = errors.New("the code must be 6 digits")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidTransition  = errors.New("action not allowed in the current step")
	ErrCompareFull        = errors.New("you can compare at most two advertisements")
	ErrAlreadyCompared    = errors.New("advertisement is already in the comparison")
	ErrUnknownPackage     = errors.New("unknown boost package")
	ErrNoCheckout         = errors.New("no checkout in progress")
	ErrInvalidPriceRange  = errors.New("minimum price must not exceed maximum price")
	ErrMissingBillingInfo = errors.New("full name and email are required")
	ErrCooldown           = errors.New("please wait before requesting a new code")
)

// flow carries the tracer and metrics every state machine reports to.
type flow struct {
	metrics *metrics.ServiceMetrics
	tracer  trace.Tracer
}

func newFlow(m *metrics.ServiceMetrics) flow {
	return flow{
		metrics: m,
		tracer:  otel.Tracer("market-client/service"),
	}
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// validCode accepts exactly six ASCII digits.
func validCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
