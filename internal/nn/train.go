package nn

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// EpochReport is emitted once per completed training epoch.
//
// Loss is the sum of the error function over every output of every example
// in the epoch, measured before each example's update.
type EpochReport struct {
	RunID   uuid.UUID     `json:"run_id"`
	Epoch   int           `json:"epoch"`
	Loss    float64       `json:"loss"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Reporter receives epoch reports during Train. It runs synchronously on
// the training goroutine.
type Reporter func(EpochReport)

// LogReporter returns a Reporter that prints one line per epoch.
//
// Output format: "[Epoch 3] Error: 1.2345"
func LogReporter(logger *log.Logger) Reporter {
	return func(r EpochReport) {
		logger.Printf("[Epoch %d] Error: %v", r.Epoch, r.Loss)
	}
}

// SetReporter installs r as the epoch-loss side channel. nil disables
// reporting.
func (n *Network) SetReporter(r Reporter) {
	n.reporter = r
}

// Train fits the network to a dataset with online gradient descent.
//
// For each of epochs passes, examples are visited in their given order.
// Every example runs Forward, builds the error vector from the error
// function's derivative, and runs Backward with the fixed learning rate.
// There is no shuffling, batching or early stopping.
//
// Parameters:
//   - inputs: Input vectors, each of length InputSize
//   - targets: Target vectors (e.g., one-hot), each of length OutputSize
//   - epochs: Number of passes over the dataset
//   - learningRate: Step size for every update
//
// The whole dataset is validated before the first update. Any layer or
// error-function failure aborts training and is returned wrapped with the
// epoch and example index.
func (n *Network) Train(inputs, targets [][]float64, epochs int, learningRate float64) error {
	if n.loss == nil {
		return ErrNoErrorFunction
	}
	if err := n.validateDataset(inputs, targets); err != nil {
		return err
	}

	runID := uuid.New()
	errs := make([]float64, n.OutputSize())

	for epoch := range epochs {
		start := time.Now()
		var total float64

		for i, input := range inputs {
			pred, err := n.Forward(input)
			if err != nil {
				return fmt.Errorf("epoch %d example %d: %w", epoch, i, err)
			}

			target := targets[i]
			for j, p := range pred {
				d, err := n.loss.Derivative(p, target[j])
				if err != nil {
					return fmt.Errorf("epoch %d example %d: %w", epoch, i, err)
				}
				l, err := n.loss.Normal(p, target[j])
				if err != nil {
					return fmt.Errorf("epoch %d example %d: %w", epoch, i, err)
				}
				errs[j] = d
				total += l
			}

			if _, err := n.Backward(errs, learningRate); err != nil {
				return fmt.Errorf("epoch %d example %d: %w", epoch, i, err)
			}
		}

		if n.reporter != nil {
			n.reporter(EpochReport{
				RunID:   runID,
				Epoch:   epoch,
				Loss:    total,
				Elapsed: time.Since(start),
			})
		}
	}

	return nil
}

// validateDataset checks example counts and every vector length.
func (n *Network) validateDataset(inputs, targets [][]float64) error {
	if len(inputs) == 0 {
		return fmt.Errorf("Network.Train: %w: empty dataset", ErrShapeMismatch)
	}
	if len(targets) != len(inputs) {
		return &ShapeError{Op: "Network.Train", What: "example count", Want: len(inputs), Got: len(targets)}
	}

	for i := range inputs {
		if len(inputs[i]) != n.InputSize() {
			return &ShapeError{Op: "Network.Train", What: fmt.Sprintf("input %d", i), Want: n.InputSize(), Got: len(inputs[i])}
		}
		if len(targets[i]) != n.OutputSize() {
			return &ShapeError{Op: "Network.Train", What: fmt.Sprintf("target %d", i), Want: n.OutputSize(), Got: len(targets[i])}
		}
	}

	return nil
}
