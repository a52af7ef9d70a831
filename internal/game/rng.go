package game

import "math/rand/v2"

// RandomSource supplies the coin flips used when serving
type RandomSource interface {
	Float64() float64 // [0, 1)
}

type defaultRNG struct{}

func (defaultRNG) Float64() float64 { return rand.Float64() }

// DefaultRNG returns the process-wide random source
func DefaultRNG() RandomSource { return defaultRNG{} }

// Replicable RNG, for tests and --seed
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// coinFlip returns +1 or -1 with equal probability
func coinFlip(rng RandomSource) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}
