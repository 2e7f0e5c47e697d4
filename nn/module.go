// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/feedforward/internal/nn"
)

// Layer is the interface every network stage implements.
//
// Forward maps an input vector of length InputSize to an output of length
// OutputSize and caches what Backward needs. Backward takes the error with
// respect to the last output, updates any parameters in place and returns
// the error with respect to the last input.
//
// Custom layers may be mixed with Dense and Softmax in a Network.
type Layer = nn.Layer

// Parameter is a named trainable vector owned by a layer.
type Parameter = nn.Parameter

// NewParameter creates a parameter that aliases data.
func NewParameter(name string, data []float64) *Parameter {
	return nn.NewParameter(name, data)
}

// Sampler draws initial weight values.
type Sampler = nn.Sampler

// NewUniformSampler returns a deterministic Uniform(0, 1) sampler.
//
// Two samplers with the same seed produce the same sequence.
func NewUniformSampler(seed uint64) Sampler {
	return nn.NewUniformSampler(seed)
}
