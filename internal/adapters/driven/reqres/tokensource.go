package reqres

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
)

// Ensure SessionTokenSource implements oauth2.TokenSource.
var _ oauth2.TokenSource = (*SessionTokenSource)(nil)

// SessionTokenSource adapts the persisted session token to oauth2.TokenSource.
// With no stored token it returns an empty token and no Authorization
// header is sent.
type SessionTokenSource struct {
	store   driven.SessionStore
	timeout time.Duration
}

// NewSessionTokenSource creates a token source reading from store.
func NewSessionTokenSource(store driven.SessionStore) *SessionTokenSource {
	return &SessionTokenSource{store: store, timeout: 5 * time.Second}
}

// Token implements oauth2.TokenSource.
func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	token, ok, err := s.store.Get(ctx, domain.SessionTokenKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &oauth2.Token{}, nil
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
