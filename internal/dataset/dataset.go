// Package dataset provides small classification datasets with one-hot
// targets for training feedforward networks.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// ErrUnknownDataset is returned by ByName for an unregistered name.
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset holds parallel input and target vectors.
type Dataset struct {
	Name    string
	Inputs  [][]float64 // [num_samples, input_size]
	Targets [][]float64 // [num_samples, num_classes], one-hot
}

// NumSamples returns the number of examples.
func (d Dataset) NumSamples() int {
	return len(d.Inputs)
}

// InputSize returns the length of an input vector, or 0 when empty.
func (d Dataset) InputSize() int {
	if len(d.Inputs) == 0 {
		return 0
	}
	return len(d.Inputs[0])
}

// NumClasses returns the length of a target vector, or 0 when empty.
func (d Dataset) NumClasses() int {
	if len(d.Targets) == 0 {
		return 0
	}
	return len(d.Targets[0])
}

// XOR returns the two-input exclusive-or table.
//
// Class 1 means the inputs differ.
func XOR() Dataset {
	return Dataset{
		Name: "xor",
		Inputs: [][]float64{
			{0, 0},
			{0, 1},
			{1, 0},
			{1, 1},
		},
		Targets: [][]float64{
			{1, 0},
			{0, 1},
			{0, 1},
			{1, 0},
		},
	}
}

// Parity3 returns every 3-bit input labelled by parity.
//
// Class 0 means an odd number of set bits.
func Parity3() Dataset {
	return Dataset{
		Name: "parity3",
		Inputs: [][]float64{
			{0, 0, 0},
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 0, 0},
			{1, 0, 1},
			{1, 1, 0},
			{1, 1, 1},
		},
		Targets: [][]float64{
			{0, 1},
			{1, 0},
			{1, 0},
			{0, 1},
			{1, 0},
			{0, 1},
			{0, 1},
			{1, 0},
		},
	}
}

var builtins = map[string]func() Dataset{
	"xor":     XOR,
	"parity3": Parity3,
}

// Names returns the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns a fresh copy of a built-in dataset.
func ByName(name string) (Dataset, error) {
	build, ok := builtins[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDataset, name, Names())
	}
	return build(), nil
}

// OneHot encodes label as a vector of length classes.
func OneHot(label, classes int) ([]float64, error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("label %d out of range [0, %d)", label, classes)
	}
	v := make([]float64, classes)
	v[label] = 1
	return v, nil
}

// LoadCSV loads a labelled dataset from a CSV file.
//
// CSV Format:
//
//	label,x0,x1,...
//	1,0.5,0.25,...
//
// The first row is a header and is skipped. Every row must have the same
// number of columns.
//
// Parameters:
//   - filename: Path to CSV file
//   - classes: Number of classes; labels must lie in [0, classes)
//
// Returns a Dataset named after the file with one-hot targets.
func LoadCSV(filename string, classes int) (Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return Dataset{}, fmt.Errorf("CSV file is empty or missing header")
	}

	// Skip header row
	header, records := records[0], records[1:]
	if len(header) < 2 {
		return Dataset{}, fmt.Errorf("CSV needs a label column and at least one feature, got %d columns", len(header))
	}

	ds := Dataset{
		Name:    filename,
		Inputs:  make([][]float64, len(records)),
		Targets: make([][]float64, len(records)),
	}

	for i, record := range records {
		label, err := strconv.Atoi(record[0])
		if err != nil {
			return Dataset{}, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		ds.Targets[i], err = OneHot(label, classes)
		if err != nil {
			return Dataset{}, fmt.Errorf("row %d: %w", i+1, err)
		}

		features := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			features[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("invalid feature at row %d, column %d: %w", i+1, j+1, err)
			}
		}
		ds.Inputs[i] = features
	}

	return ds, nil
}
