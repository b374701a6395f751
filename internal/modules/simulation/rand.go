package simulation

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for the pipeline. *math/rand.Rand
// satisfies it; tests inject a seeded source to get deterministic output.
type Rand interface {
	Intn(n int) int
	NormFloat64() float64
}

// NewRand returns a freshly seeded random source. Each pipeline run gets its
// own source, so concurrent runs never share generator state.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
