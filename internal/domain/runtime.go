package domain

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Clock returns the current time. Services read it at the moment a decision is made.
type Clock func() time.Time

// RandSource draws an index in [0, n).
type RandSource interface {
	IntN(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	src RandSource
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewSeededRand is a deterministic source, for tests and reproducible runs.
func NewSeededRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed))
}
