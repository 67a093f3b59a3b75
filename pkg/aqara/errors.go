package aqara

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingConfig indicates one or more mandatory credentials are unset
	ErrMissingConfig = errors.New("missing configuration")

	// ErrAbandoned indicates a call was still queued when its context ended
	ErrAbandoned = errors.New("request abandoned before dispatch")
)

// TransportKind classifies transport-level failures so callers can render
// connectivity problems, timeouts and malformed responses differently.
type TransportKind string

const (
	TransportConnection TransportKind = "connection"
	TransportTimeout    TransportKind = "timeout"
	TransportMalformed  TransportKind = "malformed"
)

// APIError is a vendor rejection: the HTTP exchange succeeded but the
// envelope carried a nonzero code.
type APIError struct {
	Code      int
	Message   string
	Details   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("vendor API error %d: %s", e.Code, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if e.RequestID != "" {
		msg += " [request " + e.RequestID + "]"
	}
	return msg
}

// TransportError wraps a failure to complete or parse the HTTP exchange.
type TransportError struct {
	Kind   TransportKind
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportTimeout:
		return "request timed out: " + e.Detail
	case TransportMalformed:
		return "malformed vendor response: " + e.Detail
	default:
		return "connection failed: " + e.Detail
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports a caller argument rejected before any network I/O.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// missingConfigError builds the startup-fatal error listing every absent
// credential, not just the first one found.
func missingConfigError(fields []string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(fields, ", "))
}
