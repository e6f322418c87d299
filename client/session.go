package client

import (
	"sync"

	"github.com/taskhive/backend/domain"
)

type sessionAPI interface {
	Register(email, password, name string) (AuthResult, error)
	Login(email, password string) (AuthResult, error)
	Verify(token string) (domain.User, error)
}

// TokenStorage abstracts the durable token store.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session caches the current user and token, re-verifying a persisted token
// on startup. Any verification failure logs the session out.
type Session struct {
	api   sessionAPI
	store TokenStorage

	mu      sync.RWMutex
	user    *domain.User
	token   string
	loading bool
}

func NewSession(api sessionAPI, store TokenStorage) *Session {
	return &Session{api: api, store: store}
}

// Start restores the session from the durable store. A missing token or a
// failed verification leaves the session logged out; only store failures are
// returned as errors.
func (s *Session) Start() error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	user, err := s.api.Verify(token)
	if err != nil {
		return s.Logout()
	}

	s.set(token, &user)
	return nil
}

func (s *Session) Register(email, password, name string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.Register(email, password, name)
	if err != nil {
		return err
	}
	s.set(result.Token, &result.User)
	return s.store.Save(result.Token)
}

func (s *Session) Login(email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.Login(email, password)
	if err != nil {
		return err
	}
	s.set(result.Token, &result.User)
	return s.store.Save(result.Token)
}

// Logout clears the cached identity and the persisted token.
func (s *Session) Logout() error {
	s.set("", nil)
	return s.store.Clear()
}

// CurrentUser returns the cached user, or nil when logged out.
func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a verified identity is cached.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports whether an auth operation is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) set(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
