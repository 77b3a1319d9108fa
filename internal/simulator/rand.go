package simulator

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the random source the generators draw from. *rand.Rand satisfies
// it; tests pass a fixed-seed generator so selections are reproducible.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// lockedRand makes a *rand.Rand safe for the concurrent panel goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRand returns a goroutine-safe PCG source. A zero seed draws the seed
// from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
