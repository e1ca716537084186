package garden

import "math/rand/v2"

// RandomSource abstracts the engine's randomness so stochastic scoring is
// seedable in tests.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide generator.
func DefaultSource() RandomSource { return defaultSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a reproducible PCG-backed source.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// hit draws one Bernoulli trial. Probabilities outside [0,1] are clamped:
// p <= 0 never hits, p >= 1 always hits.
func hit(p float64, rng RandomSource) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
