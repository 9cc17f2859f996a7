// Package session implements the client half of the House Warrior
// authentication contract: a constructible session-state object holding the
// current user, persisting the issued token to durable storage, and exposing
// Login, Register, and Logout to a presentation layer.
//
// Storage and transport are injected so tests can substitute doubles. The
// client never returns errors from its public operations; every failure path
// resolves to a boolean result plus a human-readable message in Err.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// State is the session lifecycle state.
type State string

const (
	StateUnknown       State = "unknown"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Storage keys. Presence of both is the sole persisted representation of
// "logged in".
const (
	TokenKey = "housewarrior_auth_token"
	UserKey  = "housewarrior_user"
)

const defaultTimeout = 30 * time.Second

// User is the sanitized account record as it appears on the wire. It carries
// no password material by construction.
type User struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Role          string `json:"role"`

	ServiceCategories []string `json:"serviceCategories,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	Interests         string   `json:"interests,omitempty"`
	Description       string   `json:"description,omitempty"`
}

// RegisterInput is the payload submitted on registration.
type RegisterInput struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Role          string `json:"role"`

	ServiceCategories []string `json:"serviceCategories,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	Interests         string   `json:"interests,omitempty"`
	Description       string   `json:"description,omitempty"`
}

// envelope mirrors the server's response format.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string
	// Storage persists the session across client instances. Required.
	Storage Storage
	// HTTPClient is the transport. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Client holds authentication state for one user session.
type Client struct {
	mu      sync.Mutex
	baseURL string
	http    *http.Client
	storage Storage

	state   State
	current *User
	lastErr string
	busy    bool
}

// New constructs a Client and restores any persisted session. Restoration is
// optimistic: a stored token is trusted without a server round-trip, and any
// privileged call downstream is still re-validated server-side. If either key
// is missing, or the stored user record fails to parse, both keys are cleared
// and the client starts anonymous.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		storage: cfg.Storage,
		state:   StateLoading,
	}
	c.restore()
	return c
}

func (c *Client) restore() {
	token, hasToken := c.storage.Get(TokenKey)
	rawUser, hasUser := c.storage.Get(UserKey)

	if !hasToken || token == "" || !hasUser {
		c.clearSession()
		return
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		c.clearSession()
		return
	}

	c.current = &user
	c.state = StateAuthenticated
}

// Login authenticates against the server. On success the token and user are
// persisted and the state becomes authenticated. On any failure — bad
// credentials, transport error, malformed response — storage and state are
// left untouched, the message is captured in Err, and false is returned.
func (c *Client) Login(ctx context.Context, email, password string) bool {
	c.mu.Lock()
	c.busy = true
	c.lastErr = ""
	c.mu.Unlock()
	defer c.setBusy(false)

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	env, ok := c.post(ctx, "/auth/login", body, "Login failed")
	if !ok {
		return false
	}
	if env.Token == "" || env.User == nil {
		c.setErr("Login failed")
		return false
	}

	rawUser, err := json.Marshal(env.User)
	if err != nil {
		c.setErr("Login failed")
		return false
	}
	if err := c.storage.Set(TokenKey, env.Token); err != nil {
		c.setErr("Login failed")
		return false
	}
	if err := c.storage.Set(UserKey, string(rawUser)); err != nil {
		c.storage.Delete(TokenKey)
		c.setErr("Login failed")
		return false
	}

	c.mu.Lock()
	c.current = env.User
	c.state = StateAuthenticated
	c.mu.Unlock()
	return true
}

// Register submits a registration. Success does not log the user in and
// persists nothing; the caller is expected to direct the user to Login.
func (c *Client) Register(ctx context.Context, input RegisterInput) bool {
	c.mu.Lock()
	c.busy = true
	c.lastErr = ""
	c.mu.Unlock()
	defer c.setBusy(false)

	body, err := json.Marshal(input)
	if err != nil {
		c.setErr("Registration failed")
		return false
	}
	_, ok := c.post(ctx, "/auth/register", body, "Registration failed")
	return ok
}

// Logout clears the persisted session and resets to anonymous. No network call.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSession()
}

// post issues the request and decodes the envelope. Non-2xx responses and
// transport failures record the server message (or fallback) and report !ok.
func (c *Client) post(ctx context.Context, path string, body []byte, fallback string) (*envelope, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		c.setErr(fallback)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.setErr(fallback)
		return nil, false
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		c.setErr(msg)
		return nil, false
	}
	if decodeErr != nil {
		c.setErr(fallback)
		return nil, false
	}
	return &env, true
}

// clearSession removes both storage keys and resets in-memory state.
// Caller holds the lock or is single-threaded construction.
func (c *Client) clearSession() {
	c.storage.Delete(TokenKey)
	c.storage.Delete(UserKey)
	c.current = nil
	c.state = StateAnonymous
}

func (c *Client) setBusy(v bool) {
	c.mu.Lock()
	c.busy = v
	c.mu.Unlock()
}

func (c *Client) setErr(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}

// State returns the current session state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated reports whether a session is active.
func (c *Client) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (c *Client) CurrentUser() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	clone := *c.current
	return &clone
}

// Err returns the message from the most recent failed operation, empty after
// a success or before any call.
func (c *Client) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Loading reports whether a Login or Register call is in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Token returns the persisted bearer token, empty when not authenticated.
// The token is opaque to the client; it is only stored and replayed.
func (c *Client) Token() string {
	token, _ := c.storage.Get(TokenKey)
	return token
}
