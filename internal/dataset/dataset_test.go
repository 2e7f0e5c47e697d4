package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"parity3", "xor"}, Names())

	for _, name := range Names() {
		ds, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, ds.Name)
		require.Equal(t, len(ds.Inputs), len(ds.Targets))

		for i, target := range ds.Targets {
			assert.Len(t, ds.Inputs[i], ds.InputSize())
			assert.Len(t, target, ds.NumClasses())

			var sum float64
			for _, v := range target {
				sum += v
			}
			assert.Equal(t, 1.0, sum, "%s target %d is not one-hot", name, i)
		}
	}

	_, err := ByName("iris")
	require.ErrorIs(t, err, ErrUnknownDataset)
}

// TestParity3_Labels tests that class 0 marks an odd number of set bits.
func TestParity3_Labels(t *testing.T) {
	ds := Parity3()
	require.Equal(t, 8, ds.NumSamples())

	for i, in := range ds.Inputs {
		bits := int(in[0] + in[1] + in[2])
		want := 1
		if bits%2 == 1 {
			want = 0
		}
		assert.Equal(t, 1.0, ds.Targets[i][want], "input %v", in)
	}
}

func TestByName_ReturnsCopy(t *testing.T) {
	a, err := ByName("xor")
	require.NoError(t, err)
	a.Inputs[0][0] = 99

	b, err := ByName("xor")
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Inputs[0][0])
}

func TestOneHot(t *testing.T) {
	v, err := OneHot(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 0}, v)

	_, err = OneHot(4, 4)
	require.Error(t, err)
	_, err = OneHot(-1, 4)
	require.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "or.csv")
	content := "label,a,b\n0,0,0\n1,0,1\n1,1,0\n1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := LoadCSV(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.NumSamples())
	assert.Equal(t, 2, ds.InputSize())
	assert.Equal(t, []float64{0, 1}, ds.Inputs[1])
	assert.Equal(t, []float64{1, 0}, ds.Targets[0])
	assert.Equal(t, []float64{0, 1}, ds.Targets[3])
}

func TestLoadCSV_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	_, err := LoadCSV(filepath.Join(dir, "missing.csv"), 2)
	require.Error(t, err)

	_, err = LoadCSV(write("header.csv", "label,a\n"), 2)
	require.Error(t, err)

	_, err = LoadCSV(write("label.csv", "label,a\nx,1\n"), 2)
	require.Error(t, err)

	_, err = LoadCSV(write("range.csv", "label,a\n3,1\n"), 2)
	require.Error(t, err)

	_, err = LoadCSV(write("feature.csv", "label,a\n1,abc\n"), 2)
	require.Error(t, err)

	_, err = LoadCSV(write("ragged.csv", "label,a,b\n1,0\n"), 2)
	require.Error(t, err)
}
