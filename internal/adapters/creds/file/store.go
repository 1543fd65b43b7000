package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/bnema/estate-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	sessionDirMode  = 0o700
	sessionFileMode = 0o600
	tempFilePattern = ".session-*.toml.tmp"
	schemaVersion   = 1
)

// Store persists the session as a TOML file. Token and identity live in
// the same file and are written and removed together, never
// independently.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.CredentialStore = (*Store)(nil)

type identitySchema struct {
	ID    string `toml:"id"`
	Role  string `toml:"role"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
	Phone string `toml:"phone,omitempty"`
}

type sessionSchema struct {
	Version  int             `toml:"version"`
	Token    string          `toml:"token"`
	Identity *identitySchema `toml:"identity"`
}

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !session.Authenticated() {
		return domain.ErrPartialSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := sessionSchema{
		Version: schemaVersion,
		Token:   session.Token,
		Identity: &identitySchema{
			ID:    session.Identity.ID,
			Role:  string(session.Identity.Role),
			Name:  session.Identity.Name,
			Email: session.Identity.Email,
			Phone: session.Identity.Phone,
		},
	}

	return s.write(file)
}

func (s *Store) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var file sessionSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Session{}, fmt.Errorf("decode session file: %w", err)
	}

	// A half-written record is not a session. Treat it as absent rather
	// than handing out a token without an identity.
	if file.Token == "" || file.Identity == nil || file.Identity.ID == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return domain.Session{
		Token: file.Token,
		Identity: &domain.Identity{
			ID:    file.Identity.ID,
			Role:  domain.Role(file.Identity.Role),
			Name:  file.Identity.Name,
			Email: file.Identity.Email,
			Phone: file.Identity.Phone,
		},
	}, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (s *Store) write(file sessionSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.path), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false
	return nil
}
