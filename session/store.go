// Package session holds the authenticated identity for the running process.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"moviehub/models"
)

// Store is the process-wide session holder. It is read by the API client and
// every view-model, and written only by Login, Logout and Clear. Credentials
// persist across runs in a JSON file.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *models.User
}

// NewStore creates a session store persisting to the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads persisted credentials, once at startup. A missing file simply
// means no session is active.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	if user.Token == "" || user.Username == "" {
		// Incomplete credentials are as good as none
		return nil
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	return nil
}

// Login stores the issued credentials and persists them
func (s *Store) Login(auth models.AuthResponse) error {
	user := &models.User{
		Username: auth.Username,
		Role:     auth.Role,
		Token:    auth.Token,
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	if err := s.persist(user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout clears the session and removes the persisted credentials
func (s *Store) Logout() {
	s.Clear()
}

// Clear drops the current session. Used by the API client when the backend
// reports the token as expired or invalid.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove session file: %v", err)
	}
}

// Current returns a copy of the authenticated user, or nil without a session
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Active reports whether a session is currently held
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Token returns the current bearer token, or "" without a session
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) persist(user *models.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
