package handler

import "github.com/housewarrior/housewarrior/internal/core/domain"

// errorResponse is the standard envelope returned on all 4xx/5xx responses.
// Error carries the underlying cause on 500s for diagnostics; callers must not
// rely on its format.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// --- Request types ---

type registerRequest struct {
	FullName      string `json:"fullName"      validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required,min=6"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Address       string `json:"address"       validate:"required"`
	Role          string `json:"role"          validate:"required,oneof=customer housewife"`

	// Role-conditional fields; the service keeps only the group matching Role.
	ServiceCategories []string `json:"serviceCategories"`
	Bio               string   `json:"bio"`
	Interests         string   `json:"interests"`
	Description       string   `json:"description"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// authResponse is the success envelope for register and login. User is always
// sanitized; its PasswordHash field is never serialized.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// profileResponse is returned by GET /api/auth/me.
type profileResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// directoryResponse is returned by the housewife directory listing.
type directoryResponse struct {
	Success bool          `json:"success"`
	Users   []domain.User `json:"users"`
}
