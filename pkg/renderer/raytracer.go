package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
)

// ErrInvalidSize is returned for frames without any pixels
var ErrInvalidSize = errors.New("frame width and height must be positive")

// RenderConfig contains frame rendering configuration
type RenderConfig struct {
	Width      int // Output width in pixels
	Height     int // Output height in pixels
	TileSize   int // Size of each tile handed to a worker
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      500,
		Height:     500,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Validate checks the frame dimensions
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// Raytracer renders whole frames of a scene
type Raytracer struct {
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if integratorInst == nil {
		return nil, errors.New("raytracer requires an integrator")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{integrator: integratorInst, config: config, logger: logger}, nil
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// RenderFrame renders one full-resolution frame from camera and writes every
// pixel to sink. The sink is only written once all tiles have finished, and
// not at all when ctx is cancelled first.
func (rt *Raytracer) RenderFrame(ctx context.Context, camera geometry.Camera, sink Sink) (RenderStats, error) {
	if err := camera.Validate(); err != nil {
		return RenderStats{}, err
	}

	rt.logger.Printf("Starting frame render.\n")
	start := time.Now()

	frame := NewFrame(rt.config.Width, rt.config.Height)
	stats, err := rt.renderPass(ctx, camera, 1, frame)
	if err != nil {
		return RenderStats{}, err
	}
	frame.WriteTo(sink)

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Finished frame render.\n")
	return stats, nil
}

// renderPass fans the tiles of frame out to a worker pool and waits for all of them
func (rt *Raytracer) renderPass(ctx context.Context, camera geometry.Camera, blockSize int, frame *Frame) (RenderStats, error) {
	tiles := NewTileGrid(frame.Width, frame.Height, rt.config.TileSize)
	pool := NewWorkerPool(rt.integrator, len(tiles), rt.config.NumWorkers)
	pool.Start()
	defer pool.Stop()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Ctx:       ctx,
			Tile:      tile,
			Camera:    camera,
			BlockSize: blockSize,
			TaskID:    i,
			Frame:     frame,
		})
	}

	var stats RenderStats
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
	}
	if firstErr != nil {
		return RenderStats{}, firstErr
	}
	// Cancellation after the last tile started still aborts the frame
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	stats.finalize()
	return stats, nil
}
