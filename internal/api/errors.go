package api

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes API failures for the propagation policy: auth
// failures surface inline, network failures during background refreshes
// are logged and swallowed.
type ErrorCode string

const (
	// CodeNetwork: the backend was unreachable or the request timed out.
	CodeNetwork ErrorCode = "network"
	// CodeAuth: credentials rejected (401/403).
	CodeAuth ErrorCode = "auth"
	// CodeServer: any other non-2xx response.
	CodeServer ErrorCode = "server"
)

// Error is a structured API failure with the endpoint for diagnostics.
type Error struct {
	Code     ErrorCode
	Status   int    // HTTP status, 0 for transport failures
	Endpoint string // method + path, e.g. "POST /orders"
	Message  string // server-provided message when available
	Err      error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		if e.Message != "" {
			return fmt.Sprintf("%s: %s (%s %d)", e.Endpoint, e.Message, e.Code, e.Status)
		}
		return fmt.Sprintf("%s: %s %d", e.Endpoint, e.Code, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsAuth reports whether err is a credential rejection.
// Uses errors.As to handle wrapped errors.
func IsAuth(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == CodeAuth
	}
	return false
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == CodeNetwork
	}
	return false
}
