package service

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// daily caches the deterministic word of the calendar day. The seed is the
// YYYYMMDD integer, so every process picking from the same vocabulary sees
// the same word; recomputation is lazy on the first access after rollover.
type daily struct {
	mu   sync.Mutex
	seed int
	word string
}

func dateSeed(t time.Time) int {
	seed, _ := strconv.Atoi(t.Format("20060102"))
	return seed
}

func (d *daily) pick(pool []string) string {
	return d.pickAt(pool, time.Now())
}

func (d *daily) pickAt(pool []string, now time.Time) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	seed := dateSeed(now)
	if seed != d.seed {
		rng := rand.New(rand.NewPCG(uint64(seed), 0))
		d.word = pool[rng.IntN(len(pool))]
		d.seed = seed
		log.Info().Int("letters", len(d.word)).Msg("daily word updated")
	}
	return d.word
}
