package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/output"
	"github.com/df07/go-sphere-marcher/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "pass", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// PassUpdate is sent once per finished progressive pass
type PassUpdate struct {
	PassNumber   int     `json:"passNumber"`
	TotalPasses  int     `json:"totalPasses"`
	BlockSize    int     `json:"blockSize"`
	ImageData    string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs    int64   `json:"elapsedMs"`
	TotalPixels  int     `json:"totalPixels"`
	Sampled      int     `json:"sampledPixels"`
	Hits         int     `json:"hits"`
	Misses       int     `json:"misses"`
	AverageSteps float64 `json:"averageSteps"`
	IsComplete   bool    `json:"isComplete"`
}

// handleRender handles progressive rendering with pass streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine owns the ResponseWriter until the channel closes
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// Console streaming stops before the event channel is closed
	consoleCtx, stopConsole := context.WithCancel(ctx)
	var consoleWG sync.WaitGroup
	defer func() {
		stopConsole()
		consoleWG.Wait()
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	sceneObj, err := s.parseCommonSceneParams(r, req)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.InitialBlockSize, err = parseIntParam(r.URL.Query(), "initialBlockSize", renderer.DefaultProgressiveConfig().InitialBlockSize, 1, 64); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	rt, err := s.newRaytracer(sceneObj, req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	progressive := renderer.NewProgressiveRaytracer(rt, renderer.ProgressiveConfig{InitialBlockSize: req.InitialBlockSize})

	startTime := time.Now()
	passChan, errChan := progressive.RenderProgressive(ctx, req.Camera)

	for passResult := range passChan {
		s.handlePassComplete(ctx, sseEventChan, passResult, progressive.NumPasses(), startTime)
	}
	if err := <-errChan; err != nil {
		if ctx.Err() == nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		}
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every queued event until the channel is closed or the client leaves
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		if ctx.Err() != nil {
			continue // drain so senders never block
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards logger output to the SSE stream
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handlePassComplete encodes a pass image and queues the pass event
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan<- SSEEvent, passResult renderer.PassResult, totalPasses int, startTime time.Time) {
	if ctx.Err() != nil {
		return
	}

	imageData, err := imageToBase64PNG(passResult)
	if err != nil {
		log.Printf("Error encoding pass %d: %v", passResult.PassNumber, err)
		return
	}

	stats := passResult.Stats
	data, err := json.Marshal(PassUpdate{
		PassNumber:   passResult.PassNumber,
		TotalPasses:  totalPasses,
		BlockSize:    passResult.BlockSize,
		ImageData:    imageData,
		ElapsedMs:    time.Since(startTime).Milliseconds(),
		TotalPixels:  stats.TotalPixels,
		Sampled:      stats.SampledPixels,
		Hits:         stats.Hits,
		Misses:       stats.Misses,
		AverageSteps: stats.AverageSteps,
		IsComplete:   passResult.IsLast,
	})
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "pass", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts a pass image to base64-encoded PNG
func imageToBase64PNG(passResult renderer.PassResult) (string, error) {
	data, err := output.EncodePNG(passResult.Image)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
