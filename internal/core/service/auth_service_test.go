package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/housewarrior/housewarrior/internal/core/domain"
	"github.com/housewarrior/housewarrior/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = strconv.Itoa(r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

type stubPublisher struct {
	events []domain.AuthEvent
}

func (p *stubPublisher) Publish(event domain.AuthEvent) {
	p.events = append(p.events, event)
}

type stubCache struct {
	entries map[string]*domain.User
	hits    int
	writes  int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, userID string) (*domain.User, bool, error) {
	u, ok := c.entries[userID]
	if ok {
		c.hits++
	}
	return cloneUser(u), ok, nil
}

func (c *stubCache) Set(_ context.Context, user *domain.User) error {
	c.writes++
	c.entries[user.ID] = cloneUser(user)
	return nil
}

func newTestService(repo ports.UserRepository, cache ports.ProfileCache, audit ports.AuditPublisher) *AuthService {
	return NewAuthService(repo, cache, audit, "secret", time.Hour, zerolog.Nop())
}

func customerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		FullName:      "A",
		Email:         email,
		Password:      "secret1",
		ContactNumber: "1",
		Address:       "addr",
		Role:          domain.RoleCustomer,
		Interests:     "gardening",
		Description:   "desc",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	res, err := svc.Register(context.Background(), customerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_RoleConditionalFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	housewife := ports.RegisterInput{
		FullName:          "H",
		Email:             "h@x.com",
		Password:          "secret1",
		ContactNumber:     "1",
		Address:           "addr",
		Role:              domain.RoleHousewife,
		ServiceCategories: []string{"Tutoring"},
		Bio:               "x",
		// Mismatched group: must be discarded.
		Interests:   "ignored",
		Description: "ignored",
	}
	if _, err := svc.Register(context.Background(), housewife); err != nil {
		t.Fatalf("register housewife: %v", err)
	}

	stored, _ := repo.FindByEmail(context.Background(), "h@x.com")
	if len(stored.ServiceCategories) != 1 || stored.ServiceCategories[0] != "Tutoring" || stored.Bio != "x" {
		t.Fatalf("housewife fields not persisted: %+v", stored)
	}
	if stored.Interests != "" || stored.Description != "" {
		t.Fatalf("customer fields must be absent for housewife: %+v", stored)
	}

	customer := customerInput("c@x.com")
	customer.ServiceCategories = []string{"ignored"}
	customer.Bio = "ignored"
	if _, err := svc.Register(context.Background(), customer); err != nil {
		t.Fatalf("register customer: %v", err)
	}

	stored, _ = repo.FindByEmail(context.Background(), "c@x.com")
	if stored.Interests != "gardening" || stored.Description != "desc" {
		t.Fatalf("customer fields not persisted: %+v", stored)
	}
	if len(stored.ServiceCategories) != 0 || stored.Bio != "" {
		t.Fatalf("housewife fields must be absent for customer: %+v", stored)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	if _, err := svc.Register(context.Background(), customerInput("a@x.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), customerInput("a@x.com")); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("store count changed on duplicate: %d", len(repo.users))
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubCache(), &stubPublisher{})

	input := customerInput("a@x.com")
	input.Role = "admin"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	if _, err := svc.Register(context.Background(), customerInput("a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "a@x.com" || claims["role"] != domain.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims["id"] == "" || claims["id"] == nil {
		t.Fatalf("expected id claim, got %v", claims["id"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

// Unknown email and wrong password must be indistinguishable so callers cannot
// probe which addresses are registered.
func TestAuthService_Login_Indistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	if _, err := svc.Register(context.Background(), customerInput("a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "ghost@x.com", "secret1")
	_, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestAuthService_AuditEvents(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubPublisher{}
	svc := newTestService(repo, newStubCache(), audit)

	_, _ = svc.Register(context.Background(), customerInput("a@x.com"))
	_, _ = svc.Login(context.Background(), "a@x.com", "secret1")
	_, _ = svc.Login(context.Background(), "a@x.com", "wrong")

	want := []domain.AuthEventKind{domain.AuthEventRegister, domain.AuthEventLoginOK, domain.AuthEventLoginFailed}
	if len(audit.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(audit.events))
	}
	for i, kind := range want {
		if audit.events[i].Kind != kind {
			t.Fatalf("event %d: expected %s, got %s", i, kind, audit.events[i].Kind)
		}
		if audit.events[i].Email != "a@x.com" {
			t.Fatalf("event %d: unexpected email %s", i, audit.events[i].Email)
		}
	}
}

func TestAuthService_Profile_CachesResult(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := newTestService(repo, cache, &stubPublisher{})

	res, err := svc.Register(context.Background(), customerInput("a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := svc.Profile(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if first.PasswordHash != "" {
		t.Fatalf("profile must be sanitized")
	}
	if cache.writes != 1 {
		t.Fatalf("expected cache write, got %d", cache.writes)
	}

	second, err := svc.Profile(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("profile (cached): %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit, got %d", cache.hits)
	}
	if second.Email != first.Email {
		t.Fatalf("cached profile mismatch: %s vs %s", second.Email, first.Email)
	}
}

func TestAuthService_Housewives_Sanitized(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubCache(), &stubPublisher{})

	hw := ports.RegisterInput{
		FullName:          "H",
		Email:             "h@x.com",
		Password:          "secret1",
		ContactNumber:     "1",
		Address:           "addr",
		Role:              domain.RoleHousewife,
		ServiceCategories: []string{"Cooking"},
		Bio:               "bio",
	}
	if _, err := svc.Register(context.Background(), hw); err != nil {
		t.Fatalf("register housewife: %v", err)
	}
	if _, err := svc.Register(context.Background(), customerInput("c@x.com")); err != nil {
		t.Fatalf("register customer: %v", err)
	}

	users, err := svc.Housewives(context.Background())
	if err != nil {
		t.Fatalf("housewives: %v", err)
	}
	if len(users) != 1 || users[0].Email != "h@x.com" {
		t.Fatalf("unexpected listing: %+v", users)
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("listing must be sanitized")
	}
}
