package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer  = "customer"
	RoleHousewife = "housewife"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")

// ValidRole reports whether role is one of the two registrable roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleHousewife
}

// User models a registered account. Exactly one of the two role-conditional
// field groups is populated, determined by Role: housewives carry
// ServiceCategories and Bio, customers carry Interests and Description.
type User struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Role          string `json:"role"`

	// Housewife-only fields.
	ServiceCategories []string `json:"serviceCategories,omitempty"`
	Bio               string   `json:"bio,omitempty"`

	// Customer-only fields.
	Interests   string `json:"interests,omitempty"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns a copy safe to hand to callers: the password hash is
// stripped so it can never leak through serialization or logging.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
