package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionStore holds bearer tokens issued by the login endpoint. Tokens are
// random per login rather than a fixed shared string, and expire after a
// fixed lifetime. In-memory only: restarts log everyone out.
type sessionStore struct {
	mu       sync.RWMutex
	tokens   map[string]time.Time
	lifetime time.Duration
}

func newSessionStore(lifetime time.Duration) *sessionStore {
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}
	return &sessionStore{
		tokens:   make(map[string]time.Time),
		lifetime: lifetime,
	}
}

// Issue mints a new session token.
func (s *sessionStore) Issue() string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.lifetime)
	s.mu.Unlock()

	return token
}

// Valid reports whether a token is live, pruning it when expired.
func (s *sessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	expiry, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return false
	}
	return true
}
