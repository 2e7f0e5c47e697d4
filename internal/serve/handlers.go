package serve

import (
	"errors"
	"net/http"
	"time"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/gin-gonic/gin"
)

const (
	subscriberBuffer = 256
	writeWait        = 10 * time.Second
)

// LayerInfo describes one layer in a ModelInfo.
type LayerInfo struct {
	Kind       string `json:"kind"`
	InputSize  int    `json:"input_size"`
	OutputSize int    `json:"output_size"`
	Activation string `json:"activation,omitempty"`
}

// ModelInfo is the body of GET /v1/model.
type ModelInfo struct {
	InputSize     int         `json:"input_size"`
	OutputSize    int         `json:"output_size"`
	ErrorFunction string      `json:"error_function,omitempty"`
	Parameters    int         `json:"parameters"`
	Layers        []LayerInfo `json:"layers"`
}

// PredictRequest is the body of POST /v1/predict.
type PredictRequest struct {
	Inputs []float64 `json:"inputs"`
}

// PredictResponse is the reply to POST /v1/predict.
type PredictResponse struct {
	Outputs []float64 `json:"outputs"`
	Class   int       `json:"class"`
}

// TrainRequest is the body of POST /v1/train.
type TrainRequest struct {
	Inputs       [][]float64 `json:"inputs"`
	Targets      [][]float64 `json:"targets"`
	Epochs       int         `json:"epochs"`
	LearningRate float64     `json:"learning_rate"`
}

// Describe returns the layer layout of the served network.
func (s *Server) Describe() ModelInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := ModelInfo{
		InputSize:  s.net.InputSize(),
		OutputSize: s.net.OutputSize(),
		Layers:     make([]LayerInfo, 0, s.net.Len()),
	}
	if ef := s.net.ErrorFunction(); ef != nil {
		info.ErrorFunction = ef.Name()
	}
	for _, p := range s.net.Parameters() {
		info.Parameters += p.Len()
	}

	for i := 0; i < s.net.Len(); i++ {
		layer := s.net.Layer(i)
		li := LayerInfo{
			InputSize:  layer.InputSize(),
			OutputSize: layer.OutputSize(),
		}
		switch l := layer.(type) {
		case *nn.Dense:
			li.Kind = "dense"
			li.Activation = l.Activation().Name()
		case *nn.Softmax:
			li.Kind = "softmax"
		default:
			li.Kind = "custom"
		}
		info.Layers = append(info.Layers, li)
	}

	return info
}

func (s *Server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, s.Describe())
}

func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	class, outputs, err := s.Predict(req.Inputs)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, PredictResponse{Outputs: outputs, Class: class})
}

func (s *Server) handleTrain(c *gin.Context) {
	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := s.Train(req.Inputs, req.Targets, req.Epochs, req.LearningRate)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleEpochs streams epoch reports as JSON text frames until the client
// goes away.
func (s *Server) handleEpochs(c *gin.Context) {
	// Subscribe before the handshake completes so that a client that has
	// connected sees every report published afterwards.
	reports, cancel := s.hub.Subscribe(subscriberBuffer)
	defer cancel()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case r, ok := <-reports:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(r); err != nil {
				return
			}
		}
	}
}

// statusFor maps network errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, nn.ErrShapeMismatch), errors.Is(err, ErrTooManyEpochs):
		return http.StatusBadRequest
	case errors.Is(err, nn.ErrNumericDefect):
		return http.StatusUnprocessableEntity
	case errors.Is(err, nn.ErrNoErrorFunction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
