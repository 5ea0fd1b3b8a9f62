package question

import (
	"math/rand"
	"sync"
	"time"
)

// Rand supplies the randomness used for topic shuffling, template choice and
// question IDs. Injecting it keeps the pipeline deterministic under test.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand guards a math/rand source so one generator can serve concurrent
// requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// NewRand returns a time-seeded Rand for production use.
func NewRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRand returns a deterministic Rand, primarily for tests.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}
