// Package store holds the client-side state containers: the persisted
// session, the synchronized cart mirror, and the transient UI signal stores
// (toasts, modal prompts). Stores are constructed once at startup and passed
// to consumers explicitly; none of them renders UI or is reachable as a
// package-level singleton.
package store

import (
	"fmt"
	"sync"

	"pawshop/internal/api"
	"pawshop/internal/storage"
)

// sessionSnapshot is the durable shape written under storage.KeyAuth.
type sessionSnapshot struct {
	User  *api.User `json:"user"`
	Token string    `json:"token"`
}

// SessionStore holds the authenticated identity and bearer token. It never
// talks to the network; login/logout transitions are written to durable
// storage and memory as a single step so consumers cannot observe a partial
// session.
type SessionStore struct {
	mu    sync.RWMutex
	kv    *storage.Store
	user  *api.User
	token string
}

// NewSessionStore restores any persisted session from kv. kv may be nil for
// a purely in-memory session (tests).
func NewSessionStore(kv *storage.Store) (*SessionStore, error) {
	s := &SessionStore{kv: kv}
	if kv == nil {
		return s, nil
	}

	var snap sessionSnapshot
	ok, err := kv.Get(storage.KeyAuth, &snap)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok && snap.User != nil && snap.Token != "" {
		s.user = snap.User
		s.token = snap.Token
	}
	return s, nil
}

// Login stores the identity and token.
func (s *SessionStore) Login(user api.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Put(storage.KeyAuth, sessionSnapshot{User: &user, Token: token}); err != nil {
			return err
		}
	}
	u := user
	s.user = &u
	s.token = token
	return nil
}

// Logout clears identity and token, symmetric to Login.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Delete(storage.KeyAuth); err != nil {
			return err
		}
	}
	s.user = nil
	s.token = ""
	return nil
}

// UpdateUser patches the identity, leaving the token untouched.
func (s *SessionStore) UpdateUser(user api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Put(storage.KeyAuth, sessionSnapshot{User: &user, Token: s.token}); err != nil {
			return err
		}
	}
	u := user
	s.user = &u
	return nil
}

// User returns a copy of the current identity, or nil when logged out.
func (s *SessionStore) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token. Satisfies api.TokenSource.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether both identity and token are present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}
