package domain

import "time"

// AuthEventKind classifies an audit entry on the authentication flow.
type AuthEventKind string

const (
	AuthEventRegister    AuthEventKind = "register"
	AuthEventLoginOK     AuthEventKind = "login_ok"
	AuthEventLoginFailed AuthEventKind = "login_failed"
)

// AuthEvent is an audit record emitted after a register or login attempt.
// Recording is asynchronous and never blocks the request path.
type AuthEvent struct {
	Email     string
	Kind      AuthEventKind
	RequestID string
	At        time.Time
}
