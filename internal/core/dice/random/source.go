package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source rolls individual dice.
type Source interface {
	// RollDie returns a value in [1, sides]. sides is always positive.
	RollDie(sides int) int
	// RollFateDie returns -1, 0 or 1.
	RollFateDie() int
}

// Rand is a seeded Source backed by math/rand. It is safe for concurrent use;
// within one goroutine the sequence of rolls is fully determined by the seed.
type Rand struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// New returns a Rand that replays the same rolls for the same seed.
func New(seed int64) *Rand {
	return &Rand{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewFromEntropy returns a Rand seeded from crypto/rand.
func NewFromEntropy() (*Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// Seed returns the seed r was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// RollDie rolls a single die with the provided number of sides.
func (r *Rand) RollDie(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1
}

// RollFateDie rolls a single Fate die.
func (r *Rand) RollFateDie() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(3) - 1
}

var defaultSource = sync.OnceValue(func() *Rand {
	r, err := NewFromEntropy()
	if err != nil {
		// crypto/rand unavailable: seed from the clock.
		return New(time.Now().UnixNano())
	}
	return r
})

// Default returns the process-wide entropy-seeded Source.
func Default() *Rand {
	return defaultSource()
}

var (
	_ Source = (*Rand)(nil)
	_ Source = Fixed(0)
	_ Source = (*Sequence)(nil)
)
