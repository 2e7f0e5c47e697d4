package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// initScale keeps initial pre-activations near zero so sigmoid outputs
// start away from saturation.
const initScale = 1.0 / 1000

// Sampler is the weight-initialization source: it returns independent
// uniform samples in [0, 1).
//
// distuv.Uniform{Min: 0, Max: 1} satisfies Sampler.
type Sampler interface {
	Rand() float64
}

// defaultSampler draws from the process-wide math/rand/v2 source, which is
// safe for concurrent layer construction.
var defaultSampler Sampler = distuv.Uniform{Min: 0, Max: 1}

// NewUniformSampler returns a deterministic Sampler over [0, 1).
//
// Two samplers created with the same seed produce the same sequence, which
// makes layer initialization reproducible.
func NewUniformSampler(seed uint64) Sampler {
	return distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// Uniform fills a new slice of n weights with draws from s scaled by 1/1000.
//
// Parameters:
//   - n: Number of weights
//   - s: Sample source; nil selects the process-wide source
//
// Returns a slice with values in [0, 0.001).
func Uniform(n int, s Sampler) []float64 {
	if s == nil {
		s = defaultSampler
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = s.Rand() * initScale
	}
	return data
}

// Zeros returns a zero-filled slice of length n.
//
// This is used for bias initialization.
func Zeros(n int) []float64 {
	return make([]float64, n)
}
