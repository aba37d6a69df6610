package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated is returned before any network I/O when a protected
	// operation is called without a bearer token.
	ErrUnauthenticated  = errors.New("authentication required")
	ErrMissingParameter = errors.New("missing required parameter")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.StatusCode, e.Message)
}

// TransportError means no response was received at all.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MessageError is the normalized {message} shape returned by the checkout
// and payment operations for every kind of failure.
type MessageError struct {
	Message string
	Err     error
}

func (e *MessageError) Error() string {
	return e.Message
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side check that failed before any request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func newAPIError(operation string, statusCode int, body []byte) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    backendMessage(body, statusCode),
		Body:       body,
	}
}

// backendMessage extracts the human readable message the backend put in an
// error payload, falling back to the HTTP status text.
func backendMessage(body []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case payload.Msg != "":
			return payload.Msg
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "unexpected response"
}

func normalize(err error) error {
	if err == nil {
		return nil
	}
	var msgErr *MessageError
	if errors.As(err, &msgErr) {
		return err
	}
	return &MessageError{Message: Message(err, "Something went wrong, please try again"), Err: err}
}

// Message picks what to show the user: the backend's message when there is
// one, the validation reason for client-side failures, otherwise fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var msgErr *MessageError
	if errors.As(err, &msgErr) && msgErr.Message != "" {
		return msgErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Please log in to continue"
	}
	return fallback
}

func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
