package ports

import (
	"context"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

// AuditPublisher hands an auth event off for asynchronous recording.
// Implementations must not block the caller.
type AuditPublisher interface {
	Publish(event domain.AuthEvent)
}

// AuditRecorder persists auth events. Called from the audit workers, never
// from the request path.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// ProfileCache caches sanitized user records by ID.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, bool, error)
	Set(ctx context.Context, user *domain.User) error
}
