package domain

import "time"

// SessionTokenKey is the fixed storage key under which the session token is kept.
const SessionTokenKey = "token"

// Session is an authenticated session against the remote directory.
// It replaces a bare "token present" flag so that expiry can be honoured
// without changing call sites.
type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time

	// ExpiresAt is nil when the token carries no expiry.
	ExpiresAt *time.Time
}

// IsValid returns true if the session has a token that has not expired at now.
func (s *Session) IsValid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return false
	}
	return true
}

// Credentials are the login form inputs.
type Credentials struct {
	Email    string
	Password string
}
