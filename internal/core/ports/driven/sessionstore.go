package driven

import "context"

// SessionStore is durable, process-wide client storage for session data.
// Values are keyed by fixed names (see domain.SessionTokenKey).
type SessionStore interface {
	// Get returns the value for key. A missing key returns "", false, nil.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
