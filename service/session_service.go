package service

import (
	"context"
	"fmt"
	"time"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/ports"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an issued session credential is accepted
const DefaultSessionTTL = 24 * time.Hour

// SessionService issues and verifies session credentials.
// It keeps no server-side session state: a credential is valid until it
// expires, and logging out only discards it on the caller's side.
type SessionService struct {
	tokenizer ports.Tokenizer
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(tokenizer ports.Tokenizer, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		tokenizer: tokenizer,
		ttl:       ttl,
		now:       time.Now,
	}
}

// TTL returns the lifetime of issued credentials
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a credential for the asserted identity. The claim is trusted as given.
func (s *SessionService) Issue(identity core.Identity) (string, *core.Session, error) {
	now := s.now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Email:     identity.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return token, session, nil
}

// Verify checks a presented credential and returns the session it encodes
func (s *SessionService) Verify(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrUnauthorized
	}

	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		return nil, core.ErrTokenExpired
	}

	return session, nil
}
