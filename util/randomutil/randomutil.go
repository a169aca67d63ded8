package randomutil

import (
	"math/rand/v2"
	"sync"
)

// RandomGenerator is the source of randomness for creative selection and random pricing.
// Implementations must be safe for concurrent use: one instance is shared by every request.
type RandomGenerator interface {
	// Int64N returns a uniform value in [0, n). It panics if n <= 0.
	Int64N(n int64) int64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// RandomNumberGenerator draws from the math/rand/v2 global source, which is safe for concurrent use.
type RandomNumberGenerator struct{}

func (RandomNumberGenerator) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

func (RandomNumberGenerator) IntN(n int) int {
	return rand.IntN(n)
}

// SeededGenerator produces a reproducible sequence for a given seed.
// Access to the underlying source is serialized, so it is safe for concurrent use,
// although the interleaving between goroutines is not deterministic.
type SeededGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeededGenerator(seed uint64) *SeededGenerator {
	return &SeededGenerator{
		rnd: rand.New(rand.NewPCG(seed, seed)),
	}
}

func (g *SeededGenerator) Int64N(n int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Int64N(n)
}

func (g *SeededGenerator) IntN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

// New returns a SeededGenerator when seed is non-zero and the global source otherwise.
func New(seed int64) RandomGenerator {
	if seed == 0 {
		return RandomNumberGenerator{}
	}
	return NewSeededGenerator(uint64(seed))
}
