package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	InitialBlockSize int // Pixel block size for the first pass, halved each pass
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialBlockSize: 8, // 8, 4, 2, 1
	}
}

// ProgressiveRaytracer renders a frame in passes of decreasing block size so
// a coarse preview is available early
type ProgressiveRaytracer struct {
	raytracer *Raytracer
	config    ProgressiveConfig
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	BlockSize  int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(raytracer *Raytracer, config ProgressiveConfig) *ProgressiveRaytracer {
	if config.InitialBlockSize < 1 {
		config.InitialBlockSize = 1
	}
	return &ProgressiveRaytracer{raytracer: raytracer, config: config}
}

// NumPasses returns the number of passes down to single-pixel blocks
func (pr *ProgressiveRaytracer) NumPasses() int {
	return log2Ceil(pr.config.InitialBlockSize) + 1
}

// blockSizeForPass returns the block size for a 1-based pass number
func (pr *ProgressiveRaytracer) blockSizeForPass(passNumber int) int {
	if passNumber >= pr.NumPasses() {
		return 1
	}
	return max(1, pr.config.InitialBlockSize>>(passNumber-1))
}

// RenderPass renders a single progressive pass
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, camera geometry.Camera, passNumber int) (PassResult, error) {
	if err := camera.Validate(); err != nil {
		return PassResult{}, err
	}

	blockSize := pr.blockSizeForPass(passNumber)
	cfg := pr.raytracer.config
	start := time.Now()

	frame := NewFrame(cfg.Width, cfg.Height)
	stats, err := pr.raytracer.renderPass(ctx, camera, blockSize, frame)
	if err != nil {
		return PassResult{}, err
	}
	stats.Elapsed = time.Since(start)

	return PassResult{
		PassNumber: passNumber,
		BlockSize:  blockSize,
		Image:      frame.Image(),
		Stats:      stats,
		IsLast:     passNumber >= pr.NumPasses(),
	}, nil
}

// RenderProgressive renders with channel-based communication.
// The pass channel is closed after the last pass or on error; the error
// channel receives at most one error.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, camera geometry.Camera) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		logger := pr.raytracer.logger
		logger.Printf("Starting progressive rendering with %d passes...\n", pr.NumPasses())

		for pass := 1; pass <= pr.NumPasses(); pass++ {
			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			result, err := pr.RenderPass(ctx, camera, pass)
			if err != nil {
				errChan <- err
				return
			}

			logger.Printf("Pass %d completed in %v (block size %d)\n", pass, result.Stats.Elapsed, result.BlockSize)

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
