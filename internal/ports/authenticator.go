package ports

import (
	"context"

	"github.com/bnema/estate-cli/internal/domain"
)

// Authenticator exchanges credentials for a session. Implemented by the
// API gateway.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
}
