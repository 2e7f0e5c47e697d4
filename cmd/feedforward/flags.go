package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/nn"
)

// modelFlags are the flags shared by train and serve.
type modelFlags struct {
	data      string
	csv       string
	classes   int
	hidden    string
	hiddenAct string
	outputAct string
	errFn     string
	softmax   bool
	seed      uint64
}

func registerModelFlags(fs *flag.FlagSet) *modelFlags {
	mf := &modelFlags{}
	fs.StringVar(&mf.data, "data", "xor", fmt.Sprintf("Built-in dataset %v", dataset.Names()))
	fs.StringVar(&mf.csv, "csv", "", "Load a labelled CSV dataset instead of -data")
	fs.IntVar(&mf.classes, "classes", 2, "Number of classes in the CSV dataset")
	fs.StringVar(&mf.hidden, "hidden", "8", "Comma-separated hidden layer widths (empty = none)")
	fs.StringVar(&mf.hiddenAct, "hidden-activation", nn.LeakyReLUName, "Hidden layer activation")
	fs.StringVar(&mf.outputAct, "output-activation", nn.SigmoidName, "Output layer activation")
	fs.StringVar(&mf.errFn, "error", "", "Error function (default: log_err with softmax, else mse)")
	fs.BoolVar(&mf.softmax, "softmax", true, "Append a softmax layer")
	fs.Uint64Var(&mf.seed, "seed", 0, "Weight initialization seed (0 = random)")
	return mf
}

func (mf *modelFlags) dataset() (dataset.Dataset, error) {
	if mf.csv != "" {
		return dataset.LoadCSV(mf.csv, mf.classes)
	}
	return dataset.ByName(mf.data)
}

// build creates a network sized for ds.
func (mf *modelFlags) build(ds dataset.Dataset) (*nn.Network, error) {
	hidden, err := parseSizes(mf.hidden)
	if err != nil {
		return nil, err
	}
	return nn.BuildNetwork(nn.ModelConfig{
		Input:            ds.InputSize(),
		Hidden:           hidden,
		Output:           ds.NumClasses(),
		HiddenActivation: mf.hiddenAct,
		OutputActivation: mf.outputAct,
		ErrorFunction:    mf.errFn,
		Softmax:          mf.softmax,
		Seed:             mf.seed,
	})
}

// parseSizes parses "8,4" into []int{8, 4}. An empty string yields nil.
func parseSizes(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid layer width %q: %w", p, err)
		}
		sizes[i] = n
	}
	return sizes, nil
}
