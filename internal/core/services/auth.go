package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// sessionIDKey stores the local id of the current session next to its token.
const sessionIDKey = "session_id"

// AuthService logs in against the remote directory and persists the
// session token in the session store.
type AuthService struct {
	client driven.DirectoryClient
	store  driven.SessionStore
	now    func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(client driven.DirectoryClient, store driven.SessionStore) *AuthService {
	return &AuthService{client: client, store: store, now: time.Now}
}

// Login authenticates and persists the returned token.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, domain.NewOpError(domain.ErrValidation, "login", "Email and password are required", nil)
	}

	logger.Debug("Logging in as %s", email)
	token, err := s.client.Authenticate(ctx, email, creds.Password)
	if err != nil {
		return nil, wrapOp(err, domain.ErrAuth, "login", authMessage(err))
	}

	session := NewSession(token, s.now())
	if err := s.store.Set(ctx, domain.SessionTokenKey, token); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, sessionIDKey, session.ID); err != nil {
		return nil, err
	}
	logger.Info("Session %s started", session.ID)
	return session, nil
}

// Logout clears the persisted session.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.SessionTokenKey); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionIDKey)
}

// Current returns the persisted session.
// A missing or expired token returns domain.ErrNotAuthenticated.
func (s *AuthService) Current(ctx context.Context) (*domain.Session, error) {
	token, ok, err := s.store.Get(ctx, domain.SessionTokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	session := NewSession(token, s.now())
	if id, ok, err := s.store.Get(ctx, sessionIDKey); err == nil && ok {
		session.ID = id
	}
	if !session.IsValid(s.now()) {
		logger.Debug("Session %s expired at %s", session.ID, session.ExpiresAt)
		return nil, domain.ErrNotAuthenticated
	}
	return session, nil
}

// IsAuthenticated reports whether a valid session is present.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

// NewSession builds a session for token. When the token is a JWT with an
// exp claim, the session expires with it; opaque tokens never expire.
func NewSession(token string, now time.Time) *domain.Session {
	return &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: tokenExpiry(token),
	}
}

func tokenExpiry(token string) *time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	return &exp
}

// authMessage keeps the remote service's own wording for rejected logins.
func authMessage(err error) string {
	if msg := domain.UserMessage(err); msg != "" {
		return msg
	}
	return "Login failed"
}
