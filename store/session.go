package store

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Pravinale/pantonefrontend/models"
)

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// AuthSession holds whether the shopper is signed in, their id and role,
// mirrored to the session file under the same keys the browser used. The
// session counts as signed in only when both id and role are present.
type AuthSession struct {
	mu     sync.Mutex
	local  *LocalStore
	userID string
	role   models.UserRole
}

func NewAuthSession(local *LocalStore) *AuthSession {
	s := &AuthSession{local: local}
	id, okID := stringValue(local, userIDKey)
	role, okRole := stringValue(local, userRoleKey)
	if okID && okRole && id != "" && role != "" {
		s.userID = id
		s.role = models.UserRole(role)
	}
	return s
}

// SignIn records the authenticated identity and persists it.
func (s *AuthSession) SignIn(userID string, role models.UserRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.role = role
	if err := s.local.Set(userIDKey, userID); err != nil {
		log.Printf("failed to persist user id: %v", err)
	}
	if err := s.local.Set(userRoleKey, string(role)); err != nil {
		log.Printf("failed to persist user role: %v", err)
	}
}

// SignOut clears the identity and its durable mirror.
func (s *AuthSession) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.role = ""
	if err := s.local.Delete(userIDKey); err != nil {
		log.Printf("failed to clear user id: %v", err)
	}
	if err := s.local.Delete(userRoleKey); err != nil {
		log.Printf("failed to clear user role: %v", err)
	}
}

func (s *AuthSession) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != ""
}

func (s *AuthSession) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *AuthSession) Role() models.UserRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func stringValue(local *LocalStore, key string) (string, bool) {
	raw, ok := local.Get(key)
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}
