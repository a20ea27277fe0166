// Package session provides the portal's session stores: an in-process memory
// store for single-replica deployments and a Redis-backed store for shared
// deployments.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

// MemoryStore keeps sessions in a mutex-guarded map. Find and Save work on
// copies so concurrent requests never share a map entry; overlapping writes
// to the same session resolve last-write-wins.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Find(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionExpired
	}

	clone := sess
	if sess.Account != nil {
		account := *sess.Account
		clone.Account = &account
	}
	return &clone, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	clone := *sess
	if sess.Account != nil {
		account := *sess.Account
		clone.Account = &account
	}

	s.mu.Lock()
	s.sessions[sess.ID] = clone
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// StartJanitor sweeps expired sessions at the given interval until ctx is
// cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.sweep(now); n > 0 {
					log.Debug().Int("sessions", n).Msg("swept expired sessions")
				}
			}
		}
	}()
}

func (s *MemoryStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
