// Package serve exposes a feedforward network over HTTP.
//
// Endpoints:
//
//	GET  /v1/model    layer layout and parameter count
//	POST /v1/predict  {"inputs": [...]} -> {"outputs": [...], "class": n}
//	POST /v1/train    {"inputs": [[...]], "targets": [[...]], "epochs": n, "learning_rate": x}
//	GET  /v1/epochs   websocket stream of epoch reports
//
// Requests against the network are serialized: a prediction waits for a
// running training request to finish.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrTooManyEpochs is returned when a training request exceeds MaxEpochs.
var ErrTooManyEpochs = errors.New("too many epochs")

// Config holds server settings.
type Config struct {
	Addr         string      // Listen address (default: ":8080")
	Epochs       int         // Epochs used when a train request omits them (default: 1000)
	MaxEpochs    int         // Upper bound on epochs per train request (default: 100000)
	LearningRate float64     // Learning rate used when a request omits it (default: 0.01)
	RequestLog   bool        // Log every request with gin's logger
	Logger       *log.Logger // Receives epoch and lifecycle logs (nil = silent)
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Epochs:       1000,
		MaxEpochs:    100000,
		LearningRate: 0.01,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.Epochs <= 0 {
		c.Epochs = def.Epochs
	}
	if c.MaxEpochs <= 0 {
		c.MaxEpochs = def.MaxEpochs
	}
	if c.LearningRate <= 0 {
		c.LearningRate = def.LearningRate
	}
	return c
}

// Server serves one network.
type Server struct {
	cfg Config

	mu  sync.Mutex
	net *nn.Network

	hub      *Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// New creates a Server for net.
//
// Example:
//
//	net, _ := nn.BuildNetwork(nn.ModelConfig{Input: 2, Hidden: []int{8}, Output: 2, Softmax: true})
//	srv := serve.New(net, serve.Config{Addr: ":8080"})
//	err := srv.Run(ctx)
func New(net *nn.Network, cfg Config) *Server {
	s := &Server{
		cfg: cfg.withDefaults(),
		net: net,
		hub: NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	if s.cfg.RequestLog {
		s.engine.Use(gin.Logger())
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	v1 := s.engine.Group("/v1")
	v1.GET("/model", s.handleModel)
	v1.POST("/predict", s.handlePredict)
	v1.POST("/train", s.handleTrain)
	v1.GET("/epochs", s.handleEpochs)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the epoch-report hub fed by Train.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run listens on Config.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logf("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logf("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// TrainResult summarizes one training run.
type TrainResult struct {
	RunID     uuid.UUID `json:"run_id"`
	Epochs    int       `json:"epochs"`
	FinalLoss float64   `json:"final_loss"`
}

// Train runs nn.Network.Train under the server lock and publishes every
// epoch report to the hub.
//
// Non-positive epochs or learningRate select the configured defaults.
func (s *Server) Train(inputs, targets [][]float64, epochs int, learningRate float64) (TrainResult, error) {
	if epochs <= 0 {
		epochs = s.cfg.Epochs
	}
	if epochs > s.cfg.MaxEpochs {
		return TrainResult{}, fmt.Errorf("%w: %d > %d", ErrTooManyEpochs, epochs, s.cfg.MaxEpochs)
	}
	if learningRate <= 0 {
		learningRate = s.cfg.LearningRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := TrainResult{Epochs: epochs}
	s.net.SetReporter(func(r nn.EpochReport) {
		result.RunID = r.RunID
		result.FinalLoss = r.Loss
		s.hub.Publish(r)
		if s.cfg.Logger != nil && (r.Epoch+1)%100 == 0 {
			nn.LogReporter(s.cfg.Logger)(r)
		}
	})
	defer s.net.SetReporter(nil)

	if err := s.net.Train(inputs, targets, epochs, learningRate); err != nil {
		return result, err
	}
	s.logf("run %s: %d epochs, final loss %.6f", result.RunID, epochs, result.FinalLoss)
	return result, nil
}

// Predict runs a forward pass under the server lock.
func (s *Server) Predict(inputs []float64) (int, []float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Predict(inputs)
}

func (s *Server) logf(format string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Printf(format, args...)
	}
}
