package cached

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/bnema/estate-cli/internal/ports"
)

// Store is the process-wide credential store: an in-memory session in
// front of a durable backend. Reads are served from memory once warmed;
// writes and clears go to the backend first so the durable copy never
// lags a successful call.
type Store struct {
	durable ports.CredentialStore

	mu      sync.RWMutex
	session domain.Session
	warmed  bool
}

var _ ports.CredentialStore = (*Store)(nil)

var errNilDurableStore = errors.New("durable credential store is nil")

func NewStore(durable ports.CredentialStore) (*Store, error) {
	if durable == nil {
		return nil, errNilDurableStore
	}

	return &Store{durable: durable}, nil
}

func (s *Store) Load(ctx context.Context) (domain.Session, error) {
	s.mu.RLock()
	if s.warmed {
		session := s.session
		s.mu.RUnlock()
		if !session.Authenticated() {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return session, nil
	}
	s.mu.RUnlock()

	session, err := s.durable.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.remember(domain.Session{})
		}
		return domain.Session{}, err
	}

	s.remember(session)
	return session, nil
}

func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if !session.Authenticated() {
		return domain.ErrPartialSession
	}

	if err := s.durable.Save(ctx, session); err != nil {
		return err
	}

	s.remember(session)
	return nil
}

// Clear drops the in-memory session even if the durable clear fails:
// once teardown starts, no caller may keep authenticating with the old
// token.
func (s *Store) Clear(ctx context.Context) error {
	err := s.durable.Clear(ctx)
	s.remember(domain.Session{})
	return err
}

func (s *Store) remember(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.warmed = true
}
