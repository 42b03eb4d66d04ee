package api

import (
	"fmt"
	"net/http"
)

// TransportError indicates the request never produced an HTTP response
// (network unreachable, timeout, connection reset).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError indicates the server answered with a non-2xx status.
// Message holds the server-provided message when one was present.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Unauthorized reports whether the server rejected the credential.
func (e *ServerError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError indicates a 2xx response whose body could not be parsed.
// Treated as failure by callers; no state is applied from it.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed server response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
