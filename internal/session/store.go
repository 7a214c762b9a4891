// Package session keeps per-user conversation state. The store is an
// explicit dependency injected into the bot rather than a package-level
// map, and sessions are scoped to one active conversation: completion or
// expiry removes them.
package session

import (
	"sync"
	"time"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

const defaultTTL = 30 * time.Minute

type Store struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*models.Session),
		ttl:      defaultTTL,
	}
}

// Get returns the user's active session, or nil when none exists or the
// existing one has expired.
func (s *Store) Get(userID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	if time.Since(sess.UpdatedAt) > s.ttl {
		delete(s.sessions, userID)
		return nil
	}
	return sess
}

// Start resets the user to a fresh conversation awaiting their request.
func (s *Store) Start(userID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &models.Session{
		UserID:    userID,
		Stage:     models.StageAwaitingRequest,
		UpdatedAt: time.Now(),
	}
	s.sessions[userID] = sess
	return sess
}

// Update applies fn to the user's session under the store lock, so one
// user's mutation never races another handler for the same user.
func (s *Store) Update(userID string, fn func(*models.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	fn(sess)
	sess.UpdatedAt = time.Now()
	return true
}

// End removes the user's session once the conversation completes.
func (s *Store) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Sweep drops expired sessions; the bot runs it periodically.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if time.Since(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
