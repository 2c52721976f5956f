// Package session owns the client's authenticated identity: a single
// {token, role, user} value persisted as one JSON blob, replaced wholesale on
// login and cleared wholesale on logout or a forced unauthorized signal.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

// ErrUnsupportedRole is returned by Login before any network call when the
// role selector is neither DOCTOR nor PATIENT.
var ErrUnsupportedRole = errors.New("session: unsupported role selection")

// Session is the persisted identity. Token and Role are either both empty
// (anonymous) or both set; the store never produces a partial session.
type Session struct {
	Token string   `json:"token"`
	Role  api.Role `json:"role"`
	User  string   `json:"user"`
}

// Authenticated reports whether the session holds a credential.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// State tracks the store's lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Authenticator is the slice of the API client the store needs: the two
// role-specific login calls and token ownership.
type Authenticator interface {
	DoctorLogin(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	PatientLogin(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	SetToken(token string)
}

// Navigator moves the surrounding UI to a path, replacing history so an
// authenticated view cannot be reached by going back.
type Navigator interface {
	Replace(path string)
}

// Store is the session state machine. It is safe for concurrent use.
type Store struct {
	auth   Authenticator
	nav    Navigator
	file   string
	logger *logging.Logger

	mu      sync.RWMutex
	state   State
	session Session
}

// NewStore creates an uninitialized store persisting to file.
func NewStore(file string, auth Authenticator, nav Navigator, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		auth:   auth,
		nav:    nav,
		file:   file,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize reads the persisted session once at process start. A missing or
// malformed blob yields the anonymous session; Initialize never fails. The
// restored token, if any, is pushed into the API client.
func (s *Store) Initialize() {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateInitializing
	restored := readPersisted(s.file)
	s.session = restored
	if restored.Authenticated() {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
	s.mu.Unlock()

	s.auth.SetToken(restored.Token)
	if restored.Authenticated() {
		s.logger.Debug("session restored", "role", restored.Role, "user", restored.User)
	}
}

// Login authenticates with the role-specific endpoint and, on success,
// replaces the session wholesale, persists it, and returns it. On failure the
// session is left untouched and the error propagates for display.
func (s *Store) Login(ctx context.Context, role api.Role, creds api.Credentials) (Session, error) {
	var (
		resp *api.AuthResponse
		err  error
	)
	switch role {
	case api.RoleDoctor:
		resp, err = s.auth.DoctorLogin(ctx, creds)
	case api.RolePatient:
		resp, err = s.auth.PatientLogin(ctx, creds)
	default:
		return Session{}, ErrUnsupportedRole
	}
	if err != nil {
		return Session{}, err
	}

	user := resp.Email
	if user == "" {
		user = creds.Email
	}
	next := Session{
		Token: resp.Token,
		Role:  resp.Role,
		User:  user,
	}

	s.mu.Lock()
	s.session = next
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.auth.SetToken(next.Token)
	if err := writePersisted(s.file, next); err != nil {
		// A session that cannot be persisted still works for this process.
		s.logger.Warn("failed to persist session", "error", err)
	}
	s.logger.Info("logged in", "role", next.Role, "user", next.User)
	return next, nil
}

// Logout clears the session wholesale: in-memory state, the client token, the
// persisted blob, and navigates back to the login screen. It is also the
// unauthorized handler registered with the API client.
func (s *Store) Logout() {
	s.mu.Lock()
	s.session = Session{}
	s.state = StateAnonymous
	s.mu.Unlock()

	s.auth.SetToken("")
	if err := os.Remove(s.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove persisted session", "error", err)
	}
	if s.nav != nil {
		s.nav.Replace("/login")
	}
}

// Snapshot returns the current session value.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated reports whether a credential is currently held. It is false
// until Initialize has run.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.session.Authenticated()
}

// Role returns the authenticated role, or "".
func (s *Store) Role() api.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Role
}

// readPersisted loads the session blob. Absence, unreadable content, or a
// partial session (token without role or vice versa) all yield the anonymous
// session so startup can never fail on bad local state.
func readPersisted(file string) Session {
	raw, err := os.ReadFile(file)
	if err != nil {
		return Session{}
	}
	var restored Session
	if err := json.Unmarshal(raw, &restored); err != nil {
		return Session{}
	}
	if restored.Token == "" || restored.Role == "" {
		return Session{}
	}
	return restored
}

// writePersisted stores the session blob, creating parent directories. The
// file is user-only: it holds a bearer token.
func writePersisted(file string, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(file); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(file, raw, 0o600)
}
