// Package session holds the authenticated identity for the lifetime of the
// client process and caches it on disk between runs, taking the place the
// browser's local storage had in the original web client.
//
// The store moves between two states: anonymous and authenticated. A
// successful login stores the bearer token, the user record and the derived
// role; an explicit logout or an unauthenticated backend response clears
// them. A corrupt or expired cache file is treated as a logout rather than
// an error.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/federico588/biblioteca-tui/models"
)

// ZeroUUID is the placeholder actor identifier substituted when no valid
// session identity can be resolved for a create payload. Attributing the
// action to a sentinel user instead of failing is questionable, but it is
// what the backend expects today.
const ZeroUUID = "00000000-0000-0000-0000-000000000000"

// Routes a consumidor may reach. Admin may reach everything.
var consumidorRoutes = map[string]struct{}{
	"dashboard": {},
	"prestamos": {},
	"multas":    {},
	"items":     {},
}

type cachedSession struct {
	Token string         `json:"auth_token"`
	User  models.Usuario `json:"user_data"`
	Role  models.Role    `json:"user_role"`
	At    time.Time      `json:"at"`
}

// Store owns the current identity. It is written only by Login/Logout and
// read by every view, so a single RWMutex is enough.
type Store struct {
	path string

	mu      sync.RWMutex
	session *cachedSession
}

// NewStore creates a session store backed by the cache file at path and
// hydrates it: a readable, well-formed, unexpired cache restores the
// previous identity, anything else leaves the store anonymous. A corrupt or
// expired cache file is removed.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.restore()
	return s
}

func (s *Store) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var cached cachedSession
	if err := json.Unmarshal(data, &cached); err != nil || cached.Token == "" {
		// Same handling as the corrupt-localStorage case: drop it and
		// start anonymous.
		_ = os.Remove(s.path)
		return
	}

	if tokenExpired(cached.Token) {
		_ = os.Remove(s.path)
		return
	}

	s.session = &cached
}

// tokenExpired reports whether the cached bearer token carries an exp claim
// in the past. The signature is not verified here; the backend does that on
// every request. Opaque (non-JWT) tokens are kept and left for the backend
// to reject.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}

// SetSession stores the login result and persists it. The role is derived
// from the user's admin flag, never taken from the wire.
func (s *Store) SetSession(token string, user models.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &cachedSession{
		Token: token,
		User:  user,
		Role:  user.Rol(),
		At:    time.Now().UTC(),
	}

	return s.persist()
}

func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session cache dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session cache: %w", err)
	}

	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}

	return nil
}

// Logout clears the identity and removes the cache file. Safe to call when
// already anonymous.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	_ = os.Remove(s.path)
}

// Token returns the cached bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// CurrentUser returns the authenticated user record, or nil when anonymous.
func (s *Store) CurrentUser() *models.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

// Role returns the derived role, or "" when anonymous.
func (s *Store) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.Role
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the current role equals role exactly.
func (s *Store) HasRole(role models.Role) bool {
	return s.Role() == role
}

// CanAccess reports whether the current role may open the named route.
// Admin may access everything; consumidor only the fixed allow-list. No
// role means no access.
func (s *Store) CanAccess(route string) bool {
	switch s.Role() {
	case models.RoleAdmin:
		return true
	case models.RoleConsumidor:
		_, ok := consumidorRoutes[route]
		return ok
	}
	return false
}

// ActorIDForCreation resolves the id_usuario_creacion value for create
// payloads: the current user's id when it is a syntactically valid UUID,
// otherwise [ZeroUUID].
func (s *Store) ActorIDForCreation() string {
	if id, ok := s.validUserID(); ok {
		return id
	}
	return ZeroUUID
}

// ActorIDForEdition resolves the id_usuario_edicion value for update
// payloads: the current user's id when valid, otherwise nil so the field is
// omitted.
func (s *Store) ActorIDForEdition() *string {
	if id, ok := s.validUserID(); ok {
		return &id
	}
	return nil
}

func (s *Store) validUserID() (string, bool) {
	user := s.CurrentUser()
	if user == nil {
		return "", false
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		return "", false
	}
	return user.ID, true
}
