package ports

import (
	"context"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
}
