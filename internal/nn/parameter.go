package nn

// Parameter represents a trainable buffer of a layer.
//
// Parameters are the weights and biases that Backward updates in place.
// Data aliases the layer's storage, so writes through it change the layer;
// this is how tests and tools pin weights to known values.
//
// Example:
//
//	layer := nn.NewDense(3, 2, nn.NewSigmoid())
//	w := layer.Weights().Data() // len 6, row i feeds output i
//	w[0] = 0.5
type Parameter struct {
	name string    // Parameter name (e.g., "weight", "bias")
	data []float64 // Row-major values
}

// NewParameter creates a new trainable parameter over data.
//
// The parameter takes ownership of data; it is not copied.
func NewParameter(name string, data []float64) *Parameter {
	return &Parameter{
		name: name,
		data: data,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Data returns the parameter values.
func (p *Parameter) Data() []float64 {
	return p.data
}

// Len returns the number of values.
func (p *Parameter) Len() int {
	return len(p.data)
}
