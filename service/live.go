package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kodekulture/contexto-server/game"
)

// broker fans out guess results to live spectators of a game. Subscriber
// channels are buffered; a slow spectator drops events rather than
// blocking the guessing player.
type broker struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[chan game.GuessResult]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[uuid.UUID]map[chan game.GuessResult]struct{})}
}

// Subscribe registers a spectator for the game and returns the event
// channel together with its cancel function.
func (b *broker) Subscribe(id uuid.UUID) (<-chan game.GuessResult, func()) {
	ch := make(chan game.GuessResult, 8)
	b.mu.Lock()
	if b.subs[id] == nil {
		b.subs[id] = make(map[chan game.GuessResult]struct{})
	}
	b.subs[id][ch] = struct{}{}
	b.mu.Unlock()

	// cancel only unregisters; the channel is closed exclusively by
	// broker.close so the two paths cannot double-close it
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[id]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, id)
			}
		}
	}
	return ch, cancel
}

func (b *broker) publish(id uuid.UUID, result game.GuessResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[id] {
		select {
		case ch <- result:
		default: // spectator too slow, drop
		}
	}
}

// close drops all spectators of a game, e.g. when it is deleted.
func (b *broker) close(id uuid.UUID) {
	b.mu.Lock()
	set := b.subs[id]
	delete(b.subs, id)
	b.mu.Unlock()
	for ch := range set {
		close(ch)
	}
}
