package nn

import (
	"fmt"
	"time"
)

// ModelConfig describes a dense classifier or regressor to build.
type ModelConfig struct {
	Input            int    // Input vector length
	Hidden           []int  // Hidden layer widths, in order (may be empty)
	Output           int    // Output vector length
	HiddenActivation string // Activation of hidden layers (default: "leaky_relu")
	OutputActivation string // Activation of the last dense layer (default: "sigmoid")
	ErrorFunction    string // Error function name (default: "log_err" with Softmax, else "mse")
	Softmax          bool   // Append a Softmax layer after the last dense layer
	Seed             uint64 // Weight-initialization seed (0 = nondeterministic)
}

// withDefaults returns a copy of c with empty names filled in.
func (c ModelConfig) withDefaults() ModelConfig {
	if c.HiddenActivation == "" {
		c.HiddenActivation = LeakyReLUName
	}
	if c.OutputActivation == "" {
		c.OutputActivation = SigmoidName
	}
	if c.ErrorFunction == "" {
		if c.Softmax {
			c.ErrorFunction = LogErrName
		} else {
			c.ErrorFunction = MSEName
		}
	}
	return c
}

// BuildNetwork creates a Network from cfg.
//
// The result is Dense(Input→Hidden[0]) ... Dense(→Output) using
// HiddenActivation for every hidden layer and OutputActivation for the
// last dense layer, optionally followed by Softmax(Output).
//
// Example:
//
//	net, err := nn.BuildNetwork(nn.ModelConfig{
//	    Input:   2,
//	    Hidden:  []int{8},
//	    Output:  2,
//	    Softmax: true,
//	    Seed:    42,
//	})
func BuildNetwork(cfg ModelConfig) (*Network, error) {
	cfg = cfg.withDefaults()

	if cfg.Input <= 0 || cfg.Output <= 0 {
		return nil, fmt.Errorf("%w: input and output sizes must be positive, got %d and %d",
			ErrInvalidConfig, cfg.Input, cfg.Output)
	}
	for i, h := range cfg.Hidden {
		if h <= 0 {
			return nil, fmt.Errorf("%w: hidden layer %d has width %d", ErrInvalidConfig, i, h)
		}
	}

	hiddenAct, err := ActivationByName(cfg.HiddenActivation)
	if err != nil {
		return nil, err
	}
	outputAct, err := ActivationByName(cfg.OutputActivation)
	if err != nil {
		return nil, err
	}
	loss, err := ErrorFunctionByName(cfg.ErrorFunction)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sampler := NewUniformSampler(seed)

	layers := make([]Layer, 0, len(cfg.Hidden)+2)
	in := cfg.Input
	for _, h := range cfg.Hidden {
		layers = append(layers, NewDenseWithSampler(in, h, hiddenAct, sampler))
		in = h
	}
	layers = append(layers, NewDenseWithSampler(in, cfg.Output, outputAct, sampler))
	if cfg.Softmax {
		layers = append(layers, NewSoftmax(cfg.Output))
	}

	return NewNetwork(layers, loss)
}
