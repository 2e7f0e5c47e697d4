// Package main provides the feedforward CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/serve"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(log.LstdFlags)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("feedforward %s\n", version)
	case "train":
		err = runTrain(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("feedforward - minimal feedforward neural networks")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train a network on a dataset and report accuracy")
	fmt.Println("  serve      Serve a network over HTTP")
	fmt.Println("")
	fmt.Println("Run 'feedforward <command> -h' for command flags.")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	mf := registerModelFlags(fs)
	epochs := fs.Int("epochs", 5000, "Number of training epochs")
	lr := fs.Float64("lr", 0.05, "Learning rate")
	every := fs.Int("log-every", 500, "Log the epoch loss every N epochs (0 = never)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ds, err := mf.dataset()
	if err != nil {
		return err
	}
	net, err := mf.build(ds)
	if err != nil {
		return err
	}

	log.Printf("dataset %s: %d samples, %d inputs, %d classes",
		ds.Name, ds.NumSamples(), ds.InputSize(), ds.NumClasses())
	log.Printf("training %d epochs at learning rate %v", *epochs, *lr)

	if *every > 0 {
		report := nn.LogReporter(log.Default())
		net.SetReporter(func(r nn.EpochReport) {
			if r.Epoch%*every == 0 || r.Epoch == *epochs-1 {
				report(r)
			}
		})
	}

	if err := net.Train(ds.Inputs, ds.Targets, *epochs, *lr); err != nil {
		return err
	}

	correct := 0
	for i, in := range ds.Inputs {
		class, out, err := net.Predict(in)
		if err != nil {
			return err
		}
		want := nn.Argmax(ds.Targets[i])
		if class == want {
			correct++
		}
		fmt.Printf("  %v -> class %d (want %d) %.4f\n", in, class, want, out)
	}
	fmt.Printf("accuracy: %.2f%% (%d/%d)\n",
		100*float64(correct)/float64(ds.NumSamples()), correct, ds.NumSamples())

	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	mf := registerModelFlags(fs)
	cfg := serve.DefaultConfig()
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Default epochs per train request")
	fs.IntVar(&cfg.MaxEpochs, "max-epochs", cfg.MaxEpochs, "Maximum epochs per train request")
	fs.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "Default learning rate")
	fs.BoolVar(&cfg.RequestLog, "access-log", true, "Log every request")
	pretrain := fs.Int("pretrain", 0, "Train on the dataset for N epochs before serving")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg.Logger = log.Default()

	ds, err := mf.dataset()
	if err != nil {
		return err
	}
	net, err := mf.build(ds)
	if err != nil {
		return err
	}

	srv := serve.New(net, cfg)

	if *pretrain > 0 {
		result, err := srv.Train(ds.Inputs, ds.Targets, *pretrain, cfg.LearningRate)
		if err != nil {
			return fmt.Errorf("pretrain: %w", err)
		}
		log.Printf("pretrained %d epochs, loss %.6f", result.Epochs, result.FinalLoss)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
