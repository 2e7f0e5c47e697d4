package nn

import (
	"fmt"
	"math"
)

// Dense implements a fully connected layer followed by an activation.
//
// Performs the transformation: y[i] = act(b[i] + Σ_j x[j] * W[i][j])
// where:
//   - x is the input vector with length inputSize
//   - W is the weight matrix with shape [outputSize, inputSize], row-major
//   - b is the bias vector with length outputSize
//   - y is the output vector with length outputSize
//
// Weights are drawn uniformly from [0, 1) and scaled by 1/1000.
// Biases are initialized to zeros.
//
// Forward caches the input and the pre-activations; the next Backward
// consumes that cache and invalidates it. Backward without a fresh Forward
// fails with ErrNoForward.
//
// Example:
//
//	layer := nn.NewDense(2, 8, nn.NewLeakyReLU())
//	out, err := layer.Forward([]float64{0, 1})
type Dense struct {
	inputSize  int
	outputSize int
	weight     *Parameter // [outputSize, inputSize]
	bias       *Parameter // [outputSize]
	activation Activation

	inputs []float64 // last input, valid while cached
	preact []float64 // last pre-activations, valid while cached
	cached bool
}

// NewDense creates a new Dense layer initialized from the process-wide
// sample source.
//
// Parameters:
//   - inputSize: Number of input features
//   - outputSize: Number of output units
//   - act: Activation applied to every output unit
//
// Returns a new Dense layer.
func NewDense(inputSize, outputSize int, act Activation) *Dense {
	return NewDenseWithSampler(inputSize, outputSize, act, nil)
}

// NewDenseWithSampler creates a new Dense layer drawing its initial weights
// from s. A nil s selects the process-wide source.
//
// Panics if a size is not positive or act is nil.
func NewDenseWithSampler(inputSize, outputSize int, act Activation, s Sampler) *Dense {
	if inputSize <= 0 || outputSize <= 0 {
		panic(fmt.Sprintf("NewDense: sizes must be positive, got %d -> %d", inputSize, outputSize))
	}
	if act == nil {
		panic("NewDense: activation must not be nil")
	}

	return &Dense{
		inputSize:  inputSize,
		outputSize: outputSize,
		weight:     NewParameter("weight", Uniform(outputSize*inputSize, s)),
		bias:       NewParameter("bias", Zeros(outputSize)),
		activation: act,
		inputs:     make([]float64, inputSize),
		preact:     make([]float64, outputSize),
	}
}

// InputSize returns the number of input features.
func (d *Dense) InputSize() int {
	return d.inputSize
}

// OutputSize returns the number of output units.
func (d *Dense) OutputSize() int {
	return d.outputSize
}

// Forward computes the layer output for one input vector.
//
// Returns a *ShapeError if len(inputs) != InputSize, leaving the cache
// untouched, and a *NumericError if a pre-activation or output is NaN.
func (d *Dense) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != d.inputSize {
		return nil, &ShapeError{Op: "Dense.Forward", What: "input", Want: d.inputSize, Got: len(inputs)}
	}

	w := d.weight.data
	b := d.bias.data
	preact := make([]float64, d.outputSize)
	outputs := make([]float64, d.outputSize)

	for i := range d.outputSize {
		row := w[i*d.inputSize : (i+1)*d.inputSize]
		sum := b[i]
		for j, x := range inputs {
			sum += x * row[j]
		}
		preact[i] = sum
		outputs[i] = d.activation.Normal(sum)

		if math.IsNaN(sum) || math.IsNaN(outputs[i]) {
			d.cached = false
			return nil, &NumericError{Op: "Dense.Forward", Detail: fmt.Sprintf("NaN at output unit %d", i)}
		}
	}

	copy(d.inputs, inputs)
	d.preact = preact
	d.cached = true

	return outputs, nil
}

// Backward applies one gradient-descent step and returns the error to
// propagate to the previous layer.
//
// For each output unit i:
//
//	g = errs[i] * act'(preact[i])
//	propagated[j] += g * W[i][j]      (pre-update weight)
//	b[i] -= g * lr
//	W[i][j] -= g * x[j] * lr
//
// Parameters:
//   - errs: d(loss)/d(output), length OutputSize
//   - lr: Learning rate
//
// Returns the propagated error with length InputSize.
func (d *Dense) Backward(errs []float64, lr float64) ([]float64, error) {
	if len(errs) != d.outputSize {
		return nil, &ShapeError{Op: "Dense.Backward", What: "error", Want: d.outputSize, Got: len(errs)}
	}
	if !d.cached {
		return nil, fmt.Errorf("Dense.Backward: %w", ErrNoForward)
	}
	d.cached = false

	w := d.weight.data
	b := d.bias.data
	propagated := make([]float64, d.inputSize)

	for i := range d.outputSize {
		grad := errs[i] * d.activation.Derivative(d.preact[i])
		row := w[i*d.inputSize : (i+1)*d.inputSize]

		for j, wij := range row {
			propagated[j] += grad * wij
		}

		b[i] -= grad * lr
		if math.IsNaN(b[i]) {
			return nil, &NumericError{Op: "Dense.Backward", Detail: fmt.Sprintf("NaN in bias %d", i)}
		}

		for j := range row {
			row[j] -= grad * d.inputs[j] * lr
			if math.IsNaN(row[j]) {
				return nil, &NumericError{Op: "Dense.Backward", Detail: fmt.Sprintf("NaN in weight [%d][%d]", i, j)}
			}
		}
	}

	return propagated, nil
}

// Parameters returns the trainable parameters of this layer: [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weights returns the weight parameter, row-major [outputSize, inputSize].
func (d *Dense) Weights() *Parameter {
	return d.weight
}

// Bias returns the bias parameter.
func (d *Dense) Bias() *Parameter {
	return d.bias
}

// Activation returns the layer's activation function.
func (d *Dense) Activation() Activation {
	return d.activation
}

// PreActivations returns a copy of the cached pre-activations, or nil if no
// forward pass is pending.
func (d *Dense) PreActivations() []float64 {
	if !d.cached {
		return nil
	}
	out := make([]float64, len(d.preact))
	copy(out, d.preact)
	return out
}
