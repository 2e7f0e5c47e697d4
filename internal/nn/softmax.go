package nn

import (
	"fmt"
	"math"
)

// Softmax normalizes its input into a probability distribution.
//
// Applies: y[i] = exp(x[i]) / Σ_k exp(x[k])
//
// The maximum input is subtracted before exponentiation; this does not
// change the result but keeps exp from overflowing.
//
// Backward multiplies each upstream error by y[i] * (1 - y[i]), the diagonal
// of the softmax Jacobian only. Cross-unit terms are ignored. Softmax has no
// parameters and ignores the learning rate.
type Softmax struct {
	size    int
	outputs []float64
	cached  bool
}

// NewSoftmax creates a new Softmax layer with equal input and output size.
//
// Panics if size is not positive.
func NewSoftmax(size int) *Softmax {
	if size <= 0 {
		panic(fmt.Sprintf("NewSoftmax: size must be positive, got %d", size))
	}
	return &Softmax{
		size:    size,
		outputs: make([]float64, size),
	}
}

// InputSize returns the layer size.
func (s *Softmax) InputSize() int {
	return s.size
}

// OutputSize returns the layer size.
func (s *Softmax) OutputSize() int {
	return s.size
}

// Forward computes the softmax distribution of inputs and caches it.
func (s *Softmax) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != s.size {
		return nil, &ShapeError{Op: "Softmax.Forward", What: "input", Want: s.size, Got: len(inputs)}
	}

	maxVal := inputs[0]
	for _, x := range inputs[1:] {
		if x > maxVal {
			maxVal = x
		}
	}

	outputs := make([]float64, s.size)
	var sum float64
	for i, x := range inputs {
		outputs[i] = math.Exp(x - maxVal)
		sum += outputs[i]
	}
	for i := range outputs {
		outputs[i] /= sum
		if math.IsNaN(outputs[i]) {
			s.cached = false
			return nil, &NumericError{Op: "Softmax.Forward", Detail: fmt.Sprintf("NaN at output unit %d", i)}
		}
	}

	copy(s.outputs, outputs)
	s.cached = true

	return outputs, nil
}

// Backward returns errs[i] * y[i] * (1 - y[i]) for the cached output y.
func (s *Softmax) Backward(errs []float64, _ float64) ([]float64, error) {
	if len(errs) != s.size {
		return nil, &ShapeError{Op: "Softmax.Backward", What: "error", Want: s.size, Got: len(errs)}
	}
	if !s.cached {
		return nil, fmt.Errorf("Softmax.Backward: %w", ErrNoForward)
	}
	s.cached = false

	result := make([]float64, s.size)
	for i, e := range errs {
		y := s.outputs[i]
		result[i] = e * y * (1 - y)
	}
	return result, nil
}

// Parameters returns nil (Softmax has no trainable parameters).
func (s *Softmax) Parameters() []*Parameter {
	return nil
}
