// Package nn implements the feedforward network engine.
//
// This package provides the building blocks of a small, single-threaded
// neural network trained with online stochastic gradient descent:
//   - Layer interface: Forward/Backward on plain []float64 vectors
//   - Dense: Fully connected layer with an activation
//   - Softmax: Normalizing output layer
//   - Activations: LeakyReLU, Sigmoid
//   - Error functions: MSE, LogErr
//   - Network: Ordered layers with backprop and a training loop
//
// Nothing in this package is safe for concurrent use. A Network and its
// layers must be driven from one goroutine, or guarded by the caller.
package nn

// Layer is the interface implemented by every network stage.
//
// Forward and Backward form a protocol: Backward consumes the values cached
// by the most recent Forward on the same layer and may be called at most
// once per Forward. Calling it again, or before any Forward, returns
// ErrNoForward.
//
// Layers compose into a Network:
//
//	net, err := nn.NewNetwork([]nn.Layer{
//	    nn.NewDense(2, 8, nn.NewLeakyReLU()),
//	    nn.NewDense(8, 2, nn.NewSigmoid()),
//	    nn.NewSoftmax(2),
//	}, nn.NewLogErr())
type Layer interface {
	// InputSize returns the required input vector length.
	InputSize() int

	// OutputSize returns the produced output vector length.
	OutputSize() int

	// Forward computes the layer output and caches what Backward needs.
	//
	// Returns a *ShapeError if len(inputs) != InputSize.
	Forward(inputs []float64) ([]float64, error)

	// Backward updates any parameters in place with learning rate lr and
	// returns the error to propagate to the previous layer.
	//
	// Returns a *ShapeError if len(errs) != OutputSize.
	Backward(errs []float64, lr float64) ([]float64, error)
}

// parameterized is implemented by layers that own trainable parameters.
type parameterized interface {
	Parameters() []*Parameter
}
