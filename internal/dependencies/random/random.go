package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Seed restarts the sequence from the given seed
	Seed(seed uint64)
}

// PCGRandom implements Random using a seedable PCG source.
// It is safe for concurrent use.
type PCGRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a PCGRandom seeded from the given value
func New(seed uint64) *PCGRandom {
	r := &PCGRandom{}
	r.Seed(seed)
	return r
}

// NewFromTime creates a PCGRandom seeded from the wall clock
func NewFromTime() *PCGRandom {
	return New(uint64(time.Now().UnixNano()))
}

// Intn returns a random int in [0, n), or 0 if n <= 0
func (r *PCGRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Seed restarts the sequence from the given seed
func (r *PCGRandom) Seed(seed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
