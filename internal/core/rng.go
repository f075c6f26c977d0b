package core

import "math/rand/v2"

// RNG draws the random decisions used when planting forests. Equal seeds
// give equal sequences.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic PCG-backed RNG.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Chance reports true with probability p. p <= 0 never fires and p >= 1
// always does.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}
