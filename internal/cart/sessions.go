package cart

import (
	"sync"
	"time"
)

const (
	// SessionTTL is how long an idle session keeps its cart before the
	// cleanup loop evicts it.
	SessionTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = 5 * time.Minute
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session ids to their carts. Carts are memory-resident
// for the process lifetime only; idle sessions are evicted by a
// background loop.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewSessions() *Sessions {
	s := &Sessions{
		sessions:    make(map[string]*session),
		ttl:         SessionTTL,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Sessions) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Sessions) evictIdle() {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// Get returns the cart for the session, creating it on first use and
// refreshing the idle timestamp.
func (s *Sessions) Get(sessionID string) *Store {
	now := time.Now()

	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		s.mu.Lock()
		sess.lastSeen = now
		s.mu.Unlock()
		return sess.store
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = now
		return sess.store
	}
	sess = &session{store: NewStore(), lastSeen: now}
	s.sessions[sessionID] = sess
	return sess.store
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background cleanup and waits for it to finish.
func (s *Sessions) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
