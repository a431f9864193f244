package knowledge

import (
	"math/rand/v2"
	"sync"
)

// RandomSource picks tie-breaks. Implementations must return a value in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewRandomSource returns the process-wide source. It is safe for concurrent use.
func NewRandomSource() RandomSource {
	return globalSource{}
}

// NewSeededSource returns a reproducible source. It is not safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Locked serialises calls to src.
func Locked(src RandomSource) RandomSource {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func pick[T any](rng RandomSource, items []T) T {
	return items[rng.IntN(len(items))]
}
