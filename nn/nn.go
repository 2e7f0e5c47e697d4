// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"log"

	"github.com/born-ml/feedforward/internal/nn"
)

// Errors

var (
	// ErrShapeMismatch indicates a vector of the wrong length.
	ErrShapeMismatch = nn.ErrShapeMismatch

	// ErrNumericDefect indicates a non-finite value or an error-function
	// domain violation.
	ErrNumericDefect = nn.ErrNumericDefect

	// ErrNoForward indicates Backward without a preceding successful Forward.
	ErrNoForward = nn.ErrNoForward

	// ErrEmptyNetwork indicates a network with no layers.
	ErrEmptyNetwork = nn.ErrEmptyNetwork

	// ErrNoErrorFunction indicates Train on a network built without one.
	ErrNoErrorFunction = nn.ErrNoErrorFunction

	// ErrUnknownActivation indicates an unregistered activation name.
	ErrUnknownActivation = nn.ErrUnknownActivation

	// ErrUnknownErrorFunction indicates an unregistered error function name.
	ErrUnknownErrorFunction = nn.ErrUnknownErrorFunction

	// ErrInvalidConfig indicates a ModelConfig that cannot be built.
	ErrInvalidConfig = nn.ErrInvalidConfig
)

// ShapeError describes which vector had the wrong length.
type ShapeError = nn.ShapeError

// NumericError describes a numeric defect.
type NumericError = nn.NumericError

// Activations

// Activation is a scalar nonlinearity with its derivative.
type Activation = nn.Activation

// Activation names accepted by ActivationByName.
const (
	LeakyReLUName = nn.LeakyReLUName
	SigmoidName   = nn.SigmoidName
)

// LeakyReLU is x for x >= 0 and 0.01·x otherwise.
type LeakyReLU = nn.LeakyReLU

// NewLeakyReLU creates a LeakyReLU activation.
func NewLeakyReLU() LeakyReLU {
	return nn.NewLeakyReLU()
}

// Sigmoid is the logistic function 1/(1+e^-x).
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() Sigmoid {
	return nn.NewSigmoid()
}

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, error) {
	return nn.ActivationByName(name)
}

// Error functions

// ErrorFunction is a per-output error with its derivative.
type ErrorFunction = nn.ErrorFunction

// Error function names accepted by ErrorFunctionByName.
const (
	MSEName    = nn.MSEName
	LogErrName = nn.LogErrName
)

// MSE is the squared error (pred - target)².
type MSE = nn.MSE

// NewMSE creates a squared-error function.
func NewMSE() MSE {
	return nn.NewMSE()
}

// LogErr is the binary log error for predictions in [0, 1] and 0/1 targets.
type LogErr = nn.LogErr

// NewLogErr creates a log-error function.
func NewLogErr() LogErr {
	return nn.NewLogErr()
}

// ErrorFunctionByName returns the error function registered under name.
func ErrorFunctionByName(name string) (ErrorFunction, error) {
	return nn.ErrorFunctionByName(name)
}

// Layers

// Dense is a fully connected layer followed by an activation.
type Dense = nn.Dense

// NewDense creates a dense layer with small random weights and zero bias.
//
// Example:
//
//	hidden := nn.NewDense(2, 8, nn.NewLeakyReLU())
func NewDense(inputSize, outputSize int, act Activation) *Dense {
	return nn.NewDense(inputSize, outputSize, act)
}

// NewDenseWithSampler creates a dense layer drawing initial weights from s.
func NewDenseWithSampler(inputSize, outputSize int, act Activation, s Sampler) *Dense {
	return nn.NewDenseWithSampler(inputSize, outputSize, act, s)
}

// Softmax normalizes its input into a probability distribution.
type Softmax = nn.Softmax

// NewSoftmax creates a softmax layer over size values.
func NewSoftmax(size int) *Softmax {
	return nn.NewSoftmax(size)
}

// Network

// Network is an ordered chain of layers with an optional error function.
type Network = nn.Network

// NewNetwork creates a network from layers whose sizes chain.
//
// loss may be nil for inference-only networks.
func NewNetwork(layers []Layer, loss ErrorFunction) (*Network, error) {
	return nn.NewNetwork(layers, loss)
}

// Argmax returns the index of the largest value, or -1 for an empty slice.
func Argmax(values []float64) int {
	return nn.Argmax(values)
}

// ModelConfig describes a network for BuildNetwork.
type ModelConfig = nn.ModelConfig

// BuildNetwork creates a network from cfg.
func BuildNetwork(cfg ModelConfig) (*Network, error) {
	return nn.BuildNetwork(cfg)
}

// Training

// EpochReport is emitted once per training epoch.
type EpochReport = nn.EpochReport

// Reporter receives epoch reports during Train.
type Reporter = nn.Reporter

// LogReporter returns a Reporter that prints "[Epoch N] Error: X" lines.
func LogReporter(logger *log.Logger) Reporter {
	return nn.LogReporter(logger)
}
