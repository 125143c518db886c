package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness source for everything stochastic in a session:
// serve direction, forced deflection sign, block cascade flips and placement,
// rotation kicks. Injecting it keeps a whole session reproducible under a
// fixed seed.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// NewRand returns a seeded math/rand source. Seed 0 means "seed from the
// clock", matching the engine's default behavior.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
