// Package session owns the authentication state machine: it observes the API
// client's token, keeps the current user snapshot and exposes login,
// registration, logout and refresh to the UI layer.
//
// Public operations never panic and never return raw errors; each resolves to
// a Result carrying a user-facing message. Operations are not guarded against
// overlap: a second Login while one is in flight is allowed and the last
// completed call wins. Callers are expected to serialize via their own
// controls (e.g. disabling a submit button while loading).
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/echowave/echowave/internal/client/api"
	"github.com/echowave/echowave/internal/client/models"
	"github.com/echowave/echowave/internal/common"
	"github.com/echowave/echowave/internal/logging"
)

// Status is the session state. A freshly constructed Manager is in
// StatusChecking until Start has probed the persisted token.
type Status string

const (
	StatusChecking        Status = "checking"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Snapshot is the externally visible session state handed to subscribers.
// User is a copy; mutating it does not affect the manager.
type Snapshot struct {
	Status Status
	User   *models.User
}

// Result is the outcome of a session operation. Err is a user-facing message,
// non-empty exactly when OK is false.
type Result struct {
	OK  bool
	Err string
}

const (
	msgUsernameRequired = "Username is required"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgGenericFailure   = "Something went wrong. Please try again."
	msgServerUnreach    = "Cannot reach the server. Check your connection."
)

// Manager is the auth session manager.
type Manager struct {
	api api.Service
	log logging.Logger

	mu     sync.RWMutex
	status Status
	user   *models.User
	subs   map[int]func(Snapshot)
	nextID int
}

func NewManager(apiClient api.Service, log logging.Logger) *Manager {
	return &Manager{
		api:    apiClient,
		log:    log,
		status: StatusChecking,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Start resolves the initial StatusChecking state. If the API client holds a
// persisted token, the profile is fetched to prove it; any failure is treated
// as an invalid token and forces a local logout.
func (m *Manager) Start(ctx context.Context) {
	if !m.api.IsAuthenticated() {
		m.setState(StatusUnauthenticated, nil)
		return
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "persisted token rejected, logging out", "error", err)
		m.forceLogout(ctx)
		return
	}
	m.setState(StatusAuthenticated, user)
}

// Snapshot returns the current state with a copy of the user.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Status: m.status, User: copyUser(m.user)}
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// CurrentUser returns a copy of the cached user, or nil when unauthenticated.
// The cached value goes stale until RefreshUser is called.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyUser(m.user)
}

// Subscribe registers fn to be called on every state change. The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Login validates credentials locally, exchanges them for a token and loads
// the user profile. Validation failures surface before any network call.
func (m *Manager) Login(ctx context.Context, creds api.Credentials) Result {
	if msg := validateCredentials(creds.Username, creds.Password); msg != "" {
		return Result{Err: msg}
	}

	if err := m.api.Login(ctx, creds); err != nil {
		return Result{Err: userMessage(err)}
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "profile fetch after login failed", "error", err)
		m.forceLogout(ctx)
		return Result{Err: userMessage(err)}
	}

	m.setState(StatusAuthenticated, user)
	return Result{OK: true}
}

// Register creates the account and then performs the normal login flow with
// the same credentials. A registration success followed by a login failure is
// reported as the login failure.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) Result {
	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		return Result{Err: msg}
	}

	if err := m.api.Register(ctx, req); err != nil {
		return Result{Err: userMessage(err)}
	}

	return m.Login(ctx, api.Credentials{Username: req.Username, Password: req.Password})
}

// Logout clears the session. Local user state is dropped even when removing
// the persisted token fails.
func (m *Manager) Logout(ctx context.Context) Result {
	m.forceLogout(ctx)
	return Result{OK: true}
}

// RefreshUser re-fetches the profile for an authenticated session.
//
// Any failure, including a plain network loss, is treated as token
// invalidation and forces a full logout. This makes a flaky connection look
// like an expired session; the error is logged here so a future
// transport/auth distinction has a seam.
func (m *Manager) RefreshUser(ctx context.Context) Result {
	if m.Status() != StatusAuthenticated {
		return Result{Err: msgGenericFailure}
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "user refresh failed, logging out", "error", err)
		m.forceLogout(ctx)
		return Result{Err: userMessage(err)}
	}

	m.setState(StatusAuthenticated, user)
	return Result{OK: true}
}

func (m *Manager) forceLogout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "token clear failed during logout", "error", err)
	}
	m.setState(StatusUnauthenticated, nil)
}

// setState performs the transition and notifies subscribers outside the lock.
func (m *Manager) setState(status Status, user *models.User) {
	m.mu.Lock()
	m.status = status
	m.user = user
	snap := Snapshot{Status: status, User: copyUser(user)}
	subs := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func validateCredentials(username, password string) string {
	if strings.TrimSpace(username) == "" {
		return msgUsernameRequired
	}
	if len(password) < 6 {
		return msgPasswordTooShort
	}
	return ""
}

// userMessage maps an error to the string shown to the user: the
// server-provided message when available, otherwise a generic fallback.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, common.ErrUnavailable) {
		return msgServerUnreach
	}
	return msgGenericFailure
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
