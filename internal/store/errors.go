package store

import "errors"

// ValidationError indicates a client-side guard failed; the request was
// never sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ErrSessionChanged is returned when a request completed after the session
// was cleared or replaced. The completion is discarded and no state is
// mutated.
var ErrSessionChanged = errors.New("session changed during request")

// ErrNotAuthenticated is returned by task operations dispatched without an
// authenticated session.
var ErrNotAuthenticated = errors.New("not authenticated")

// errIncompleteAuth marks an auth payload missing the user or the token.
// The pair is never applied half-set.
var errIncompleteAuth = errors.New("auth payload missing user or token")
