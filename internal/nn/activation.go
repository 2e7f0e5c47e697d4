package nn

import (
	"fmt"
	"math"
)

// Activation is an element-wise nonlinearity applied by a Dense layer.
//
// Derivative is always evaluated at the pre-activation value, not at the
// activated output: backprop needs d(activation)/d(pre-activation).
type Activation interface {
	// Name returns the registry name used by ActivationByName.
	Name() string

	// Normal applies the function.
	Normal(x float64) float64

	// Derivative returns the slope of Normal at x.
	Derivative(x float64) float64
}

// Activation names accepted by ActivationByName.
const (
	LeakyReLUName = "leaky_relu"
	SigmoidName   = "sigmoid"
)

const leakySlope = 0.01

// LeakyReLU is a rectifier with a small slope for negative inputs.
//
// Applies the element-wise function: f(x) = x if x >= 0, else 0.01 * x
//
// Example:
//
//	act := nn.NewLeakyReLU()
//	layer := nn.NewDense(2, 8, act)
type LeakyReLU struct{}

// NewLeakyReLU creates a new LeakyReLU activation.
func NewLeakyReLU() LeakyReLU {
	return LeakyReLU{}
}

// Name returns "leaky_relu".
func (LeakyReLU) Name() string { return LeakyReLUName }

// Normal applies f(x) = x if x >= 0, else 0.01 * x.
func (LeakyReLU) Normal(x float64) float64 {
	if x < 0 {
		return leakySlope * x
	}
	return x
}

// Derivative returns 1 for x >= 0, else 0.01.
func (LeakyReLU) Derivative(x float64) float64 {
	if x < 0 {
		return leakySlope
	}
	return 1
}

// Sigmoid is the logistic function.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid struct{}

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid() Sigmoid {
	return Sigmoid{}
}

// Name returns "sigmoid".
func (Sigmoid) Name() string { return SigmoidName }

// Normal applies σ(x) = 1 / (1 + exp(-x)).
func (Sigmoid) Normal(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative returns σ(x) * (1 - σ(x)).
func (s Sigmoid) Derivative(x float64) float64 {
	y := s.Normal(x)
	return y * (1 - y)
}

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, error) {
	switch name {
	case LeakyReLUName:
		return NewLeakyReLU(), nil
	case SigmoidName:
		return NewSigmoid(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}
