package session

import "sync"

// state is the value swapped wholesale on every mutation. Keeping it a single
// struct makes the atomicity invariant mechanical: a write builds a fresh
// state and replaces the pointer under the write lock.
type state struct {
	user         *User
	role         string
	permissions  map[string]struct{}
	accessToken  string
	refreshToken string
}

var emptyState = &state{}

// Store is the single source of truth for session state. A Store is safe for
// concurrent use; reads taken while a write is in flight observe either the
// fully-prior or the fully-new state.
//
// All mutation is expected to funnel through the Controller (and the
// transport's 401/403 interceptor via the Controller). The Guard holds a
// read-only view.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates an empty, unauthenticated Store.
func NewStore() *Store {
	return &Store{st: emptyState}
}

// Set atomically replaces the entire session: identity, permission set, role,
// and token pair. Any prior session is overwritten. The permissions slice and
// the user value are copied; the caller keeps ownership of its arguments.
func (s *Store) Set(user *User, permissions []string, role, accessToken, refreshToken string) {
	next := &state{
		role:         role,
		permissions:  make(map[string]struct{}, len(permissions)),
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
	if user != nil {
		u := *user
		next.user = &u
	}
	for _, p := range permissions {
		if p == "" {
			continue
		}
		next.permissions[p] = struct{}{}
	}

	s.mu.Lock()
	s.st = next
	s.mu.Unlock()
}

// SetTokens atomically replaces only the token pair, keeping identity, role,
// and permissions. Used by the refresh flow. Calling SetTokens on an empty
// store just records the tokens; identity stays absent.
func (s *Store) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	prev := s.st
	s.st = &state{
		user:         prev.user,
		role:         prev.role,
		permissions:  prev.permissions,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
	s.mu.Unlock()
}

// Clear atomically drops the token pair, user, role, and permissions.
// Clear is idempotent and safe to call at any time, including concurrently
// with reads from the Guard or a login in flight.
func (s *Store) Clear() {
	s.mu.Lock()
	s.st = emptyState
	s.mu.Unlock()
}

// Authenticated reports whether an access token is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.accessToken != ""
}

// AccessToken returns the current access token, or "" when unauthenticated.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.accessToken
}

// RefreshToken returns the current refresh token, or "" when unauthenticated.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.refreshToken
}

// Role returns the current role name, or "" when unauthenticated.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.role
}

// HasPermission reports whether code is in the current permission set.
// It never panics and is always false on an empty store.
func (s *Store) HasPermission(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.permissions[code]
	return ok
}

// HasAnyPermission reports whether at least one of codes is in the current
// permission set. An empty codes list is false.
func (s *Store) HasAnyPermission(codes []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, code := range codes {
		if _, ok := s.st.permissions[code]; ok {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the stored identity carries the admin flag.
// False when unauthenticated.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.user != nil && s.st.user.IsAdmin == AdminFlag
}

// User returns a copy of the stored identity, or nil when unauthenticated.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.st.user == nil {
		return nil
	}
	u := *s.st.user
	return &u
}

// Snapshot returns an immutable copy of the whole session. The permission
// slice is freshly allocated and sorted order is not guaranteed.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	st := s.st
	s.mu.RUnlock()

	snap := Session{
		Role:         st.role,
		AccessToken:  st.accessToken,
		RefreshToken: st.refreshToken,
	}
	if st.user != nil {
		u := *st.user
		snap.User = &u
	}
	if len(st.permissions) > 0 {
		snap.Permissions = make([]string, 0, len(st.permissions))
		for p := range st.permissions {
			snap.Permissions = append(snap.Permissions, p)
		}
	}
	return snap
}
