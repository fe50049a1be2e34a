package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/observability"
)

// Store holds the current credential and user profile. Only Login, Logout,
// and the request client's 401 handler (via Clear) mutate it.
type Store struct {
	mu      sync.Mutex
	token   string
	user    *models.Profile
	storage Storage
	logger  *observability.Logger
}

// NewStore creates a Store backed by the given durable storage.
func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		logger:  observability.GlobalLogger,
	}
}

// Login stores the token and user snapshot in memory and in durable storage.
// No validation is performed; the caller is trusted to pass what the server
// issued.
func (s *Store) Login(token string, user models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = &user

	if err := s.storage.Set(KeyToken, token); err != nil {
		return err
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.storage.Set(KeyUser, string(encoded))
}

// Logout clears the session from memory and durable storage.
func (s *Store) Logout() error {
	_, err := s.clear()
	return err
}

// Clear removes the session and reports whether anything was actually
// cleared. Clearing an already-cleared session is a no-op, which keeps the
// 401 path idempotent when several in-flight requests fail at once.
func (s *Store) Clear() (bool, error) {
	return s.clear()
}

func (s *Store) clear() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil

	if err := s.storage.Delete(KeyToken); err != nil {
		return cleared, err
	}
	return cleared, s.storage.Delete(KeyUser)
}

// Restore rehydrates the session from durable storage. Missing or corrupted
// state degrades to logged-out; Restore never fails the caller.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.storage.Get(KeyToken)
	if err != nil {
		s.logger.Warn("session restore failed, starting logged out",
			slog.String("error", err.Error()))
		return
	}
	if !ok || token == "" {
		return
	}

	raw, ok, err := s.storage.Get(KeyUser)
	if err != nil || !ok {
		// A token without its user snapshot violates the session invariant;
		// treat the persisted state as unusable.
		s.logger.Warn("session restore found token without user, starting logged out")
		return
	}

	var user models.Profile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("session restore found malformed user snapshot, starting logged out",
			slog.String("error", err.Error()))
		return
	}

	s.token = token
	s.user = &user
}

// Token returns the current credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current user snapshot, or nil when logged out.
func (s *Store) User() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a credential is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}
