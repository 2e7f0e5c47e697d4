package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

// TestLeakyReLU tests LeakyReLU values and slopes on both sides of zero.
func TestLeakyReLU(t *testing.T) {
	act := NewLeakyReLU()

	tests := []struct {
		x, y, dy float64
	}{
		{x: -2, y: -0.02, dy: 0.01},
		{x: -0.5, y: -0.005, dy: 0.01},
		{x: 0, y: 0, dy: 1},
		{x: 0.5, y: 0.5, dy: 1},
		{x: 3, y: 3, dy: 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.y, act.Normal(tt.x), 1e-12, "Normal(%v)", tt.x)
		assert.Equal(t, tt.dy, act.Derivative(tt.x), "Derivative(%v)", tt.x)
	}
}

// TestSigmoid tests Sigmoid values and that its derivative matches a
// finite-difference estimate.
func TestSigmoid(t *testing.T) {
	act := NewSigmoid()

	assert.InDelta(t, 0.5, act.Normal(0), 1e-12)
	assert.InDelta(t, 0.25, act.Derivative(0), 1e-12)
	assert.InDelta(t, 0.7310585786, act.Normal(1), 1e-9)
	assert.InDelta(t, 0.2689414214, act.Normal(-1), 1e-9)

	for _, x := range []float64{-4, -1, -0.1, 0.3, 2, 6} {
		numeric := fd.Derivative(act.Normal, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		assert.InDelta(t, numeric, act.Derivative(x), 1e-8, "Derivative(%v)", x)
	}
}

// TestSigmoid_Extremes tests that large inputs saturate without NaN.
func TestSigmoid_Extremes(t *testing.T) {
	act := NewSigmoid()

	for _, x := range []float64{-1000, 1000} {
		assert.False(t, math.IsNaN(act.Normal(x)))
		assert.False(t, math.IsNaN(act.Derivative(x)))
	}
	assert.InDelta(t, 1, act.Normal(1000), 1e-12)
	assert.InDelta(t, 0, act.Normal(-1000), 1e-12)
}

// TestActivationByName tests the activation registry.
func TestActivationByName(t *testing.T) {
	act, err := ActivationByName("leaky_relu")
	require.NoError(t, err)
	assert.Equal(t, LeakyReLUName, act.Name())

	act, err = ActivationByName("sigmoid")
	require.NoError(t, err)
	assert.Equal(t, SigmoidName, act.Name())

	_, err = ActivationByName("tanh")
	require.ErrorIs(t, err, ErrUnknownActivation)
}
