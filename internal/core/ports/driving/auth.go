package driving

import (
	"context"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// AuthService manages the authenticated session.
type AuthService interface {
	// Login authenticates against the remote directory and persists the token.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Logout clears the persisted token.
	Logout(ctx context.Context) error

	// Current returns the persisted session, or ErrNotAuthenticated.
	Current(ctx context.Context) (*domain.Session, error)

	// IsAuthenticated reports whether a valid session is present.
	IsAuthenticated(ctx context.Context) bool
}
