package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/housewarrior/housewarrior/internal/core/domain"
	"github.com/housewarrior/housewarrior/internal/core/service"
)

type memoryUserRepo struct {
	users map[string]*domain.User
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	clone := *user
	clone.ID = "68b1a2c3d4e5f60718293a4b"
	r.users[clone.Email] = &clone
	stored := clone
	return &stored, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) ListByRole(_ context.Context, role string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

// Full register/login flow through handler and service together: duplicate
// registration, wrong-password login, and correct login.
func TestAuthFlow_EndToEnd(t *testing.T) {
	e := newTestEcho()
	repo := &memoryUserRepo{users: make(map[string]*domain.User)}
	svc := service.NewAuthService(repo, nil, nil, "secret", time.Hour, zerolog.Nop())
	handler := NewAuthHandler(svc)

	body := `{"fullName":"A","email":"a@x.com","password":"secret1","contactNumber":"1","address":"addr","role":"customer"}`

	// 1. Register succeeds with 201 and a token.
	c, rec := postJSON(e, "/api/auth/register", body)
	_ = handler.Register(c)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created["token"] == nil || created["token"] == "" {
		t.Fatalf("register: expected token in response")
	}

	// 2. Same email again fails with 400.
	c, rec = postJSON(e, "/api/auth/register", body)
	_ = handler.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate register changed store count: %d", len(repo.users))
	}

	// 3. Wrong password fails with 401.
	c, rec = postJSON(e, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	_ = handler.Login(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	// 4. Correct password succeeds with 200 and the registered user.
	c, rec = postJSON(e, "/api/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	_ = handler.Login(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var loggedIn map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &loggedIn)
	user, ok := loggedIn["user"].(map[string]any)
	if !ok || user["email"] != "a@x.com" {
		t.Fatalf("login: unexpected user payload: %+v", loggedIn["user"])
	}
}
