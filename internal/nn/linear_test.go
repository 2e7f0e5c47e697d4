package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"
)

// newTestDense builds a Dense layer with pinned weights and bias.
func newTestDense(t *testing.T, in, out int, act Activation, weights, bias []float64) *Dense {
	t.Helper()
	require.Len(t, weights, in*out)
	require.Len(t, bias, out)

	d := NewDenseWithSampler(in, out, act, NewUniformSampler(1))
	copy(d.Weights().Data(), weights)
	copy(d.Bias().Data(), bias)
	return d
}

// TestDense_Creation tests Dense layer initialization.
func TestDense_Creation(t *testing.T) {
	d := NewDense(10, 5, NewSigmoid())

	assert.Equal(t, 10, d.InputSize())
	assert.Equal(t, 5, d.OutputSize())
	assert.Equal(t, 50, d.Weights().Len())
	assert.Equal(t, 5, d.Bias().Len())
	assert.Equal(t, "weight", d.Weights().Name())
	assert.Equal(t, "bias", d.Bias().Name())
	assert.Len(t, d.Parameters(), 2)

	for _, w := range d.Weights().Data() {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.Less(t, w, initScale)
	}
	for _, b := range d.Bias().Data() {
		assert.Zero(t, b)
	}
	assert.Nil(t, d.PreActivations(), "no forward pass yet")
}

// TestDense_SeededInit tests that the same seed yields the same weights.
func TestDense_SeededInit(t *testing.T) {
	a := NewDenseWithSampler(4, 3, NewSigmoid(), NewUniformSampler(7))
	b := NewDenseWithSampler(4, 3, NewSigmoid(), NewUniformSampler(7))
	c := NewDenseWithSampler(4, 3, NewSigmoid(), NewUniformSampler(8))

	assert.Equal(t, a.Weights().Data(), b.Weights().Data())
	assert.NotEqual(t, a.Weights().Data(), c.Weights().Data())
}

func TestDense_InvalidConstruction(t *testing.T) {
	assert.Panics(t, func() { NewDense(0, 3, NewSigmoid()) })
	assert.Panics(t, func() { NewDense(3, -1, NewSigmoid()) })
	assert.Panics(t, func() { NewDense(3, 3, nil) })
}

// TestDense_Forward tests the weighted sum, bias and activation.
func TestDense_Forward(t *testing.T) {
	d := newTestDense(t, 3, 2, NewLeakyReLU(),
		[]float64{
			1, 2, 3, // unit 0
			-1, 0, -2, // unit 1
		},
		[]float64{0.5, 0.25},
	)

	out, err := d.Forward([]float64{1, 1, 1})
	require.NoError(t, err)

	// unit 0: 0.5 + 6 = 6.5
	// unit 1: 0.25 - 3 = -2.75 -> leaky 0.01 * -2.75
	assert.InDeltaSlice(t, []float64{6.5, -0.0275}, out, 1e-12)
	assert.InDeltaSlice(t, []float64{6.5, -2.75}, d.PreActivations(), 1e-12)
}

// TestDense_Determinism tests that inference has no hidden randomness.
func TestDense_Determinism(t *testing.T) {
	d := NewDenseWithSampler(4, 3, NewSigmoid(), NewUniformSampler(3))
	in := []float64{0.2, -1, 3, 0.5}

	first, err := d.Forward(in)
	require.NoError(t, err)
	for range 5 {
		again, err := d.Forward(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestDense_ShapeMismatch tests that wrong-length vectors fail without
// touching the cached forward state.
func TestDense_ShapeMismatch(t *testing.T) {
	d := NewDenseWithSampler(3, 2, NewSigmoid(), NewUniformSampler(5))

	_, err := d.Forward([]float64{1, 2, 3})
	require.NoError(t, err)
	cached := d.PreActivations()

	_, err = d.Forward([]float64{1, 2})
	require.ErrorIs(t, err, ErrShapeMismatch)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 3, shapeErr.Want)
	assert.Equal(t, 2, shapeErr.Got)
	assert.Equal(t, cached, d.PreActivations())

	_, err = d.Backward([]float64{1, 2, 3}, 0.1)
	require.ErrorIs(t, err, ErrShapeMismatch)

	// The pending forward survives both failures.
	_, err = d.Backward([]float64{1, 2}, 0.1)
	require.NoError(t, err)
}

// TestDense_BackwardRequiresForward tests the cache-valid marker.
func TestDense_BackwardRequiresForward(t *testing.T) {
	d := NewDense(2, 2, NewSigmoid())

	_, err := d.Backward([]float64{1, 1}, 0.1)
	require.ErrorIs(t, err, ErrNoForward)

	_, err = d.Forward([]float64{1, 0})
	require.NoError(t, err)
	_, err = d.Backward([]float64{1, 1}, 0.1)
	require.NoError(t, err)

	_, err = d.Backward([]float64{1, 1}, 0.1)
	require.ErrorIs(t, err, ErrNoForward, "cache must be consumed by the first backward")
}

// TestDense_BiasUpdateExact tests bias[i] -= errs[i] * act'(pre[i]) * lr
// with unit weights and zero input.
func TestDense_BiasUpdateExact(t *testing.T) {
	act := NewLeakyReLU()
	d := newTestDense(t, 2, 2, act, []float64{1, 1, 1, 1}, []float64{0.5, -0.5})

	_, err := d.Forward([]float64{0, 0})
	require.NoError(t, err)
	pre := d.PreActivations()
	require.Equal(t, []float64{0.5, -0.5}, pre)

	errs := []float64{0.3, -0.7}
	lr := 0.1
	before := append([]float64(nil), d.Bias().Data()...)

	propagated, err := d.Backward(errs, lr)
	require.NoError(t, err)

	for i := range errs {
		grad := errs[i] * act.Derivative(pre[i])
		assert.Equal(t, before[i]-grad*lr, d.Bias().Data()[i], "bias %d", i)
	}

	// Zero input leaves the weights untouched.
	assert.Equal(t, []float64{1, 1, 1, 1}, d.Weights().Data())

	// Unit weights: every input receives the sum of the gradients.
	g0 := 0.3 * 1.0
	g1 := -0.7 * 0.01
	assert.InDeltaSlice(t, []float64{g0 + g1, g0 + g1}, propagated, 1e-15)
}

// TestDense_PropagatesPreUpdateWeights tests that the returned error is
// computed from the weights as they were before the update.
func TestDense_PropagatesPreUpdateWeights(t *testing.T) {
	act := NewSigmoid()
	weights := []float64{0.2, -0.4, 0.6, 0.1, 0.3, -0.5}
	d := newTestDense(t, 3, 2, act, weights, []float64{0.05, -0.05})

	in := []float64{1, 2, -1}
	_, err := d.Forward(in)
	require.NoError(t, err)
	pre := d.PreActivations()

	errs := []float64{0.8, -1.2}
	lr := 0.5
	propagated, err := d.Backward(errs, lr)
	require.NoError(t, err)

	want := make([]float64, 3)
	for i := range 2 {
		grad := errs[i] * act.Derivative(pre[i])
		for j := range 3 {
			want[j] += grad * weights[i*3+j]
			assert.InDelta(t, weights[i*3+j]-grad*in[j]*lr, d.Weights().Data()[i*3+j], 1e-15)
		}
	}
	assert.InDeltaSlice(t, want, propagated, 1e-15)
}

// TestDense_GradientCheck compares the update applied by Backward with a
// finite-difference estimate of d(loss)/d(parameter).
func TestDense_GradientCheck(t *testing.T) {
	act := NewSigmoid()
	mse := NewMSE()
	weights := []float64{0.3, -0.2, 0.7}
	bias := []float64{0.1}
	in := []float64{0.5, -0.3, 0.8}
	target := 0.2

	lossAt := func(w, b []float64) float64 {
		probe := newTestDense(t, 3, 1, act, w, b)
		out, err := probe.Forward(in)
		require.NoError(t, err)
		l, err := mse.Normal(out[0], target)
		require.NoError(t, err)
		return l
	}

	// Analytic: with lr = 1 the update equals the gradient.
	d := newTestDense(t, 3, 1, act, weights, bias)
	out, err := d.Forward(in)
	require.NoError(t, err)
	e, err := mse.Derivative(out[0], target)
	require.NoError(t, err)
	_, err = d.Backward([]float64{e}, 1)
	require.NoError(t, err)

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}

	for j := range weights {
		analytic := weights[j] - d.Weights().Data()[j]
		numeric := fd.Derivative(func(v float64) float64 {
			w := append([]float64(nil), weights...)
			w[j] = v
			return lossAt(w, bias)
		}, weights[j], settings)

		assert.True(t, scalar.EqualWithinRel(analytic, numeric, 1e-4),
			"weight %d: analytic %v, numeric %v", j, analytic, numeric)
	}

	analytic := bias[0] - d.Bias().Data()[0]
	numeric := fd.Derivative(func(v float64) float64 {
		return lossAt(weights, []float64{v})
	}, bias[0], settings)
	assert.True(t, scalar.EqualWithinRel(analytic, numeric, 1e-4),
		"bias: analytic %v, numeric %v", analytic, numeric)
}

// TestDense_NaN tests that NaN outputs and weights are reported.
func TestDense_NaN(t *testing.T) {
	d := NewDenseWithSampler(2, 2, NewSigmoid(), NewUniformSampler(9))

	_, err := d.Forward([]float64{math.NaN(), 1})
	require.ErrorIs(t, err, ErrNumericDefect)
	assert.Nil(t, d.PreActivations())

	_, err = d.Forward([]float64{1, 1})
	require.NoError(t, err)
	_, err = d.Backward([]float64{1, 1}, math.NaN())
	require.ErrorIs(t, err, ErrNumericDefect)

	var numErr *NumericError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "Dense.Backward", numErr.Op)
}
