package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by core services wraps exactly one of these.
var (
	// ErrAuth indicates the remote service rejected the credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrFetch indicates a page listing could not be loaded.
	ErrFetch = errors.New("fetch failed")

	// ErrSearch indicates the cross-page aggregation failed.
	ErrSearch = errors.New("search failed")

	// ErrWrite indicates an update or delete was rejected or could not be sent.
	ErrWrite = errors.New("write failed")

	// ErrValidation indicates a local form invariant was violated.
	// Validation errors never reach the network layer.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an edit target was not found on any page.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthenticated indicates no valid session is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrStale indicates a result was discarded because a newer request superseded it.
	ErrStale = errors.New("superseded by a newer request")
)

// OpError is a failure of a directory operation.
// Message is safe to show to the user; Err carries the underlying cause.
type OpError struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is matches the error against its kind.
func (e *OpError) Is(target error) bool {
	return e.Kind == target
}

// NewOpError creates an OpError of the given kind.
func NewOpError(kind error, op, message string, cause error) *OpError {
	return &OpError{Kind: kind, Op: op, Message: message, Err: cause}
}

// UserMessage returns the human-readable message of err.
// For an OpError this is its Message; otherwise err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var opErr *OpError
	if errors.As(err, &opErr) && opErr.Message != "" {
		return opErr.Message
	}
	return err.Error()
}
