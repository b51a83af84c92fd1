package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kodekulture/contexto-server/game"
)

const (
	// SessionDuration is the maximum lifetime of an unfinished session;
	// after it the session is evicted from the hub (the stored copy can
	// still be hydrated on the next touch).
	SessionDuration = 24 * time.Hour
	// CompletedDuration is how long a won session stays in the hub for
	// stats and reveal calls before eviction.
	CompletedDuration = time.Hour
)

type hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*game.Session
}

func newHub(ctx context.Context, restored []*game.Session) *hub {
	h := &hub{sessions: make(map[uuid.UUID]*game.Session, len(restored))}
	for _, s := range restored {
		h.sessions[s.ID] = s
	}
	go h.gc(ctx)
	return h
}

// Get returns the session with the given id and whether it was found.
func (h *hub) Get(id uuid.UUID) (*game.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Set stores the session under its id.
func (h *hub) Set(id uuid.UUID, s *game.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[id] = s
}

// Delete evicts the session with the given id.
func (h *hub) Delete(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// All returns the current sessions.
func (h *hub) All() []*game.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*game.Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// gc alternates mark and sweep phases, evicting stale and long-finished
// sessions. Eviction only frees hub memory; the persisted rows remain.
func (h *hub) gc(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	isMarkPhase := true
	var garbage []uuid.UUID

	mark := func() {
		garbage = nil
		h.mu.RLock()
		defer h.mu.RUnlock()
		for id, s := range h.sessions {
			stats := s.Stats()
			if stats.Won && stats.CompletedAt != nil && time.Since(*stats.CompletedAt) >= CompletedDuration {
				garbage = append(garbage, id)
				continue
			}
			if time.Since(stats.StartedAt) >= SessionDuration {
				garbage = append(garbage, id)
			}
		}
	}

	sweep := func() {
		h.mu.Lock()
		for _, id := range garbage {
			delete(h.sessions, id)
		}
		h.mu.Unlock()
		garbage = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if isMarkPhase {
				mark()
			} else {
				sweep()
			}
			isMarkPhase = !isMarkPhase
		}
	}
}
