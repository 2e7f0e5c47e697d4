package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrNumericDefect        = errors.New("numeric defect")
	ErrNoForward            = errors.New("backward called without a matching forward")
	ErrEmptyNetwork         = errors.New("network has no layers")
	ErrNoErrorFunction      = errors.New("network has no error function")
	ErrUnknownActivation    = errors.New("unknown activation function")
	ErrUnknownErrorFunction = errors.New("unknown error function")
	ErrInvalidConfig        = errors.New("invalid model config")
)

// ShapeError reports a vector whose length disagrees with a declared size.
//
// It unwraps to ErrShapeMismatch. Operations that return a ShapeError have
// not modified any layer or network state.
type ShapeError struct {
	Op   string // Operation that detected the mismatch (e.g., "Dense.Forward")
	What string // Which vector was checked (e.g., "input", "error")
	Want int    // Declared size
	Got  int    // Actual length
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s shape mismatch: expected %d, got %d", e.Op, e.What, e.Want, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// NumericError reports a NaN in an output or parameter, or a violated
// error-function precondition.
//
// Training cannot safely continue after a NumericError; recovering (lower
// learning rate, fresh weights) is the caller's decision.
type NumericError struct {
	Op     string
	Detail string
}

// Error implements the error interface.
func (e *NumericError) Error() string {
	return fmt.Sprintf("%s: numeric defect: %s", e.Op, e.Detail)
}

// Unwrap returns ErrNumericDefect.
func (e *NumericError) Unwrap() error {
	return ErrNumericDefect
}
