package nn

import (
	"fmt"
	"slices"
)

// Network is an ordered chain of layers with an optional error function.
//
// Each layer's output becomes the next layer's input. The network's input
// and output sizes are those of its first and last layer.
//
// Example:
//
//	net, err := nn.NewNetwork([]nn.Layer{
//	    nn.NewDense(3, 2, nn.NewLeakyReLU()),
//	    nn.NewDense(2, 2, nn.NewSigmoid()),
//	    nn.NewSoftmax(2),
//	}, nn.NewLogErr())
//
//	out, err := net.Forward([]float64{0, 1, 1})
//
// This is equivalent to:
//
//	h1, _ := dense1.Forward(input)
//	h2, _ := dense2.Forward(h1)
//	out, _ := softmax.Forward(h2)
type Network struct {
	layers   []Layer
	loss     ErrorFunction
	inputs   []float64
	outputs  []float64
	cached   bool // set by a fully successful Forward, cleared by Backward
	reporter Reporter
}

// NewNetwork creates a new Network.
//
// Parameters:
//   - layers: Layers in forward order; must be non-empty
//   - loss: Error function used by Train; may be nil for inference only
//
// Returns ErrEmptyNetwork for an empty layer list and a *ShapeError when
// a layer's output size differs from the next layer's input size.
func NewNetwork(layers []Layer, loss ErrorFunction) (*Network, error) {
	if len(layers) == 0 {
		return nil, ErrEmptyNetwork
	}
	for i := 1; i < len(layers); i++ {
		if layers[i-1].OutputSize() != layers[i].InputSize() {
			return nil, &ShapeError{
				Op:   "NewNetwork",
				What: fmt.Sprintf("layer %d input", i),
				Want: layers[i-1].OutputSize(),
				Got:  layers[i].InputSize(),
			}
		}
	}

	return &Network{
		layers: slices.Clone(layers),
		loss:   loss,
	}, nil
}

// InputSize returns the input size of the first layer.
func (n *Network) InputSize() int {
	return n.layers[0].InputSize()
}

// OutputSize returns the output size of the last layer.
func (n *Network) OutputSize() int {
	return n.layers[len(n.layers)-1].OutputSize()
}

// Forward runs inputs through every layer in order.
//
// The network input and final output are cached and available through
// Inputs and Outputs until the next Forward. A layer failure invalidates
// the pending pass for the whole network, including later layers that
// still hold caches from an earlier Forward.
func (n *Network) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != n.InputSize() {
		return nil, &ShapeError{Op: "Network.Forward", What: "input", Want: n.InputSize(), Got: len(inputs)}
	}

	output := inputs
	for i, layer := range n.layers {
		var err error
		output, err = layer.Forward(output)
		if err != nil {
			n.cached = false
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	n.inputs = slices.Clone(inputs)
	n.outputs = output
	n.cached = true

	return slices.Clone(output), nil
}

// Backward backpropagates errs from the last layer to the first.
//
// Each layer's propagated error is the upstream error of the layer before
// it. Backward must follow a successful Forward on the same network and
// fails with ErrNoForward before touching any layer otherwise.
//
// Parameters:
//   - errs: d(loss)/d(output), length OutputSize
//   - lr: Learning rate
//
// Returns the error at the network input, which callers normally discard.
func (n *Network) Backward(errs []float64, lr float64) ([]float64, error) {
	if len(errs) != n.OutputSize() {
		return nil, &ShapeError{Op: "Network.Backward", What: "error", Want: n.OutputSize(), Got: len(errs)}
	}
	if !n.cached {
		return nil, fmt.Errorf("Network.Backward: %w", ErrNoForward)
	}
	n.cached = false

	delta := errs
	for i := len(n.layers) - 1; i >= 0; i-- {
		var err error
		delta, err = n.layers[i].Backward(delta, lr)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	return delta, nil
}

// Predict runs Forward and returns the index of the largest output.
//
// Ties resolve to the lowest index.
func (n *Network) Predict(inputs []float64) (int, []float64, error) {
	out, err := n.Forward(inputs)
	if err != nil {
		return 0, nil, err
	}
	return Argmax(out), out, nil
}

// Argmax returns the index of the largest value, or -1 for an empty slice.
func Argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i, v := range values[1:] {
		if v > values[best] {
			best = i + 1
		}
	}
	return best
}

// Parameters returns all trainable parameters from all layers, in layer
// order.
func (n *Network) Parameters() []*Parameter {
	var params []*Parameter

	for _, layer := range n.layers {
		if p, ok := layer.(parameterized); ok {
			params = append(params, p.Parameters()...)
		}
	}

	return params
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) Layer {
	if index < 0 || index >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	return n.layers[index]
}

// ErrorFunction returns the network's error function, or nil.
func (n *Network) ErrorFunction() ErrorFunction {
	return n.loss
}

// Inputs returns a copy of the input of the last successful Forward.
func (n *Network) Inputs() []float64 {
	return slices.Clone(n.inputs)
}

// Outputs returns a copy of the output of the last successful Forward.
func (n *Network) Outputs() []float64 {
	return slices.Clone(n.outputs)
}
