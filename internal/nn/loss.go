package nn

import (
	"fmt"
	"math"
)

// ErrorFunction is a per-output loss used to seed backpropagation.
//
// The loss of a multi-output example is the sum of Normal over its outputs.
// Both methods return a *NumericError when a precondition on pred or target
// is violated.
type ErrorFunction interface {
	// Name returns the registry name used by ErrorFunctionByName.
	Name() string

	// Normal returns the loss of a single prediction against its target.
	Normal(pred, target float64) (float64, error)

	// Derivative returns d(loss)/d(pred).
	Derivative(pred, target float64) (float64, error)
}

// Error function names accepted by ErrorFunctionByName.
const (
	MSEName    = "mse"
	LogErrName = "log_err"
)

// MSE computes the squared error of a single output.
//
// Loss = (pred - target)²
//
// MSE is commonly used for regression tasks. Note that it is not averaged:
// the network sums it across outputs and examples.
type MSE struct{}

// NewMSE creates a new squared-error function.
func NewMSE() MSE {
	return MSE{}
}

// Name returns "mse".
func (MSE) Name() string { return MSEName }

// Normal returns (pred - target)².
func (MSE) Normal(pred, target float64) (float64, error) {
	d := pred - target
	return d * d, nil
}

// Derivative returns 2 * (pred - target).
func (MSE) Derivative(pred, target float64) (float64, error) {
	return 2 * (pred - target), nil
}

// LogErr is the binary classification log-loss of a single output.
//
//	Loss = -ln(pred)     if target == 1
//	Loss = -ln(1 - pred) if target == 0
//
// pred must lie in [0, 1] and target must be exactly 0 or 1. Anything else
// means the caller passed an unnormalized output or the model diverged.
type LogErr struct{}

// NewLogErr creates a new log-loss function.
func NewLogErr() LogErr {
	return LogErr{}
}

// Name returns "log_err".
func (LogErr) Name() string { return LogErrName }

// Normal returns the log-loss of pred against target.
func (l LogErr) Normal(pred, target float64) (float64, error) {
	if err := l.check("LogErr.Normal", pred, target); err != nil {
		return 0, err
	}
	if target == 1 {
		return -math.Log(pred), nil
	}
	return -math.Log(1 - pred), nil
}

// Derivative returns -1/pred for target 1 and 1/(1 - pred) for target 0.
func (l LogErr) Derivative(pred, target float64) (float64, error) {
	if err := l.check("LogErr.Derivative", pred, target); err != nil {
		return 0, err
	}
	if target == 1 {
		return -1 / pred, nil
	}
	return 1 / (1 - pred), nil
}

func (LogErr) check(op string, pred, target float64) error {
	// NaN fails both comparisons, so test it explicitly.
	if math.IsNaN(pred) || pred < 0 || pred > 1 {
		return &NumericError{Op: op, Detail: fmt.Sprintf("prediction %v outside [0, 1]", pred)}
	}
	if target != 0 && target != 1 {
		return &NumericError{Op: op, Detail: fmt.Sprintf("target %v is not a class label (0 or 1)", target)}
	}
	return nil
}

// ErrorFunctionByName returns the error function registered under name.
func ErrorFunctionByName(name string) (ErrorFunction, error) {
	switch name {
	case MSEName:
		return NewMSE(), nil
	case LogErrName:
		return NewLogErr(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownErrorFunction, name)
	}
}
