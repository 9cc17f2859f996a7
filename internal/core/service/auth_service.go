package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/housewarrior/housewarrior/internal/core/domain"
	"github.com/housewarrior/housewarrior/internal/core/ports"
)

// AuthService implements registration, login, and profile lookup.
type AuthService struct {
	repo      ports.UserRepository
	cache     ports.ProfileCache
	audit     ports.AuditPublisher
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	cache ports.ProfileCache,
	audit ports.AuditPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		cache:     cache,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a new account. The email must not already exist; the
// pre-insert lookup covers the common case and the unique index on email
// backstops the lookup-then-insert race, so concurrent registrations of the
// same address still surface as ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:      input.FullName,
		Email:         input.Email,
		PasswordHash:  string(hash),
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
		Role:          input.Role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	switch input.Role {
	case domain.RoleHousewife:
		user.ServiceCategories = input.ServiceCategories
		user.Bio = input.Bio
	case domain.RoleCustomer:
		user.Interests = input.Interests
		user.Description = input.Description
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.Email, domain.AuthEventRegister)
	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created.Sanitized()}, nil
}

// Login authenticates by email and password. An unknown email and a password
// mismatch both return ErrInvalidCredentials so callers cannot probe which
// addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.publish(ctx, email, domain.AuthEventLoginFailed)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.publish(ctx, email, domain.AuthEventLoginFailed)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, email, domain.AuthEventLoginOK)

	return &ports.AuthResult{Token: token, User: user.Sanitized()}, nil
}

// Profile returns the sanitized user for an authenticated ID, consulting the
// cache before the repository.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	if s.cache != nil {
		if err := s.cache.Set(ctx, sanitized); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return sanitized, nil
}

// Housewives lists all service-provider accounts, sanitized.
func (s *AuthService) Housewives(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListByRole(ctx, domain.RoleHousewife)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Sanitized())
	}
	return out, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) publish(ctx context.Context, email string, kind domain.AuthEventKind) {
	if s.audit == nil {
		return
	}
	s.audit.Publish(domain.AuthEvent{
		Email:     email,
		Kind:      kind,
		RequestID: requestIDFrom(ctx),
		At:        time.Now().UTC(),
	})
}
