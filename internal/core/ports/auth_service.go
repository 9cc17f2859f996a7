package ports

import (
	"context"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

// RegisterInput carries all data submitted on registration. Only the
// role-conditional fields matching Role are persisted; the other group is
// discarded regardless of what the caller sent.
type RegisterInput struct {
	FullName      string
	Email         string
	Password      string
	ContactNumber string
	Address       string
	Role          string

	ServiceCategories []string
	Bio               string

	Interests   string
	Description string
}

// AuthResult is returned on successful registration or login. User is always
// sanitized (no password hash).
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Housewives(ctx context.Context) ([]domain.User, error)
}
