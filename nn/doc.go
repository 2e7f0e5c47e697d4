// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a minimal feedforward neural network engine.
//
// # Overview
//
// This package contains:
//   - Layers: Dense (fully connected with activation), Softmax
//   - Activations: LeakyReLU, Sigmoid
//   - Error functions: MSE, LogErr
//   - Network: ordered layer chain with Forward, Backward, Predict
//   - Training: online gradient descent with per-epoch reports
//
// All vectors are []float64. Every layer caches what it saw on its last
// Forward, and Backward both updates parameters in place and returns the
// error to propagate to the previous layer.
//
// # Basic Usage
//
//	import "github.com/born-ml/feedforward/nn"
//
//	func main() {
//	    net, err := nn.NewNetwork([]nn.Layer{
//	        nn.NewDense(2, 8, nn.NewLeakyReLU()),
//	        nn.NewDense(8, 2, nn.NewSigmoid()),
//	        nn.NewSoftmax(2),
//	    }, nn.NewLogErr())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    net.SetReporter(nn.LogReporter(log.Default()))
//	    if err := net.Train(inputs, targets, 5000, 0.05); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    class, probs, err := net.Predict([]float64{1, 0})
//	}
//
// # Building From Config
//
// BuildNetwork assembles the same chain from a ModelConfig:
//
//	net, err := nn.BuildNetwork(nn.ModelConfig{
//	    Input:   2,
//	    Hidden:  []int{8},
//	    Output:  2,
//	    Softmax: true,
//	    Seed:    42,
//	})
//
// # Errors
//
// Shape violations wrap ErrShapeMismatch and carry a *ShapeError.
// Non-finite values and LogErr domain violations wrap ErrNumericDefect and
// carry a *NumericError. Backward without a preceding successful Forward
// returns ErrNoForward.
//
//	if errors.Is(err, nn.ErrShapeMismatch) {
//	    // input or target has the wrong length
//	}
package nn
