package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store persists session state between runs. The two keys used are "user"
// and "access_token", matching what the web clients kept in localStorage.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

const (
	storeKeyUser  = "user"
	storeKeyToken = "access_token"
)

// MemoryStore is a threadsafe in-memory Store.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

// Session is the explicit, injectable replacement for the old module-level
// auth provider. It owns the current user and access token and checks token
// expiry lazily on every authenticated call, plus optionally on an interval.
type Session struct {
	mu    sync.Mutex
	store Store
	user  *User
	token string
	// now is swappable for tests.
	now func() time.Time
}

// NewSession restores any persisted login from the store.
func NewSession(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &Session{store: store, now: time.Now}
	if raw, ok := store.Get(storeKeyUser); ok {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.user = &u
		}
	}
	if tok, ok := store.Get(storeKeyToken); ok {
		s.token = tok
	}
	return s
}

// SetCredentials records a successful login or registration.
func (s *Session) SetCredentials(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	if raw, err := json.Marshal(user); err == nil {
		s.store.Set(storeKeyUser, string(raw))
	}
	s.store.Set(storeKeyToken, token)
}

// Clear wipes the session, both in memory and in the store.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.user = nil
	s.token = ""
	s.store.Delete(storeKeyUser)
	s.store.Delete(storeKeyToken)
}

// User returns the logged-in user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns a still-valid access token. A token past its exp claim
// clears the whole session and reports false, which is how expiry is
// detected lazily on each authenticated call.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false
	}
	if s.expiredLocked() {
		s.clearLocked()
		return "", false
	}
	return s.token, true
}

// expiredLocked inspects the exp claim without verifying the signature; the
// client holds no secret and the server re-validates every request anyway.
func (s *Session) expiredLocked() bool {
	token, _, err := jwt.NewParser().ParseUnverified(s.token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(s.now())
}

// WatchExpiry polls the token on the given interval and invokes onExpire
// once when it lapses. It returns when ctx is done.
func (s *Session) WatchExpiry(ctx context.Context, interval time.Duration, onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			had := s.token != ""
			expired := had && s.expiredLocked()
			if expired {
				s.clearLocked()
			}
			s.mu.Unlock()
			if expired && onExpire != nil {
				onExpire()
			}
		}
	}
}
