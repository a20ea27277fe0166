package ports

import (
	"context"

	"github.com/agriconnect/portal/internal/core/domain"
)

// SessionStore persists portal sessions between requests. Implementations
// must return domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Find(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}
