package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/bnema/estate-cli/internal/ports"
	"github.com/rs/zerolog"
)

// CacheInvalidator is the slice of a collection cache the session
// controller needs: the ability to drop everything after an identity
// change.
type CacheInvalidator interface {
	Invalidate()
}

// SessionService orchestrates login, logout and startup restore. It is
// the only writer of session state besides the gateway's 401 handler.
type SessionService struct {
	auth   ports.Authenticator
	creds  ports.CredentialStore
	logger zerolog.Logger

	mu     sync.Mutex
	caches []CacheInvalidator
}

func NewSessionService(auth ports.Authenticator, creds ports.CredentialStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		creds:  creds,
		logger: logger,
	}
}

// RegisterCache subscribes a collection cache to session-change
// invalidation.
func (s *SessionService) RegisterCache(cache CacheInvalidator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caches = append(s.caches, cache)
}

// Login authenticates against the platform, persists the session, and
// invalidates every registered cache so the next read refetches under
// the new identity instead of serving pre-login data.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if !session.Authenticated() {
		return domain.Session{}, domain.ErrPartialSession
	}

	if err := s.creds.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.invalidateCaches()
	s.logger.Info().Str("user", session.IdentityID()).Str("role", string(session.Identity.Role)).Msg("logged in")

	return session, nil
}

// Logout clears the credential store and all caches unconditionally.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.creds.Clear(ctx)
	s.invalidateCaches()
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info().Msg("logged out")
	return nil
}

// Restore loads the durable session at startup. A stored token is
// trusted optimistically; staleness is caught by the first
// authenticated call's 401 handling, not by a validation round-trip
// here. A missing session is not an error — it returns a zero session.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, error) {
	session, err := s.creds.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("restore session: %w", err)
	}

	return session, nil
}

// HandleSessionExpired runs as the gateway's 401 hook. The gateway has
// already cleared the credential store; this drops the caches so no
// view keeps serving data fetched under the dead session.
func (s *SessionService) HandleSessionExpired() {
	s.invalidateCaches()
	s.logger.Warn().Msg("session expired, caches dropped")
}

func (s *SessionService) invalidateCaches() {
	s.mu.Lock()
	caches := append([]CacheInvalidator(nil), s.caches...)
	s.mu.Unlock()

	for _, cache := range caches {
		cache.Invalidate()
	}
}
