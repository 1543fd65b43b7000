package ports

import (
	"context"

	"github.com/bnema/estate-cli/internal/domain"
)

// CredentialStore holds the current session. Load returns
// domain.ErrSessionNotFound when no session is stored. Save and Clear
// always act on token and identity together; a partial write is
// rejected by implementations.
type CredentialStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
