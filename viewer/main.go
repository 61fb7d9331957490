// Command viewer is an interactive SDL window for flying the camera through a scene.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-sphere-marcher/pkg/config"
	"github.com/df07/go-sphere-marcher/pkg/controller"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
	"github.com/df07/go-sphere-marcher/pkg/output"
	"github.com/df07/go-sphere-marcher/pkg/renderer"
	"github.com/df07/go-sphere-marcher/pkg/scene"
)

// Event polling rate while a frame renders or the window is idle
const (
	FPS        uint32 = 30
	MsPerFrame uint32 = 1000 / FPS
)

func init() {
	// SDL calls must stay on the main thread
	runtime.LockOSThread()
}

var keyActions = map[sdl.Keycode]controller.Action{
	sdl.K_w:      controller.MoveForward,
	sdl.K_s:      controller.MoveBackward,
	sdl.K_a:      controller.StrafeLeft,
	sdl.K_d:      controller.StrafeRight,
	sdl.K_q:      controller.MoveUp,
	sdl.K_e:      controller.MoveDown,
	sdl.K_UP:     controller.PitchUp,
	sdl.K_DOWN:   controller.PitchDown,
	sdl.K_LEFT:   controller.YawLeft,
	sdl.K_RIGHT:  controller.YawRight,
	sdl.K_ESCAPE: controller.Quit,
}

// pollActions drains the SDL event queue into navigation actions
func pollActions() []controller.Action {
	var actions []controller.Action
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			actions = append(actions, controller.Quit)
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if action, ok := keyActions[e.Keysym.Sym]; ok {
				actions = append(actions, action)
			}
		}
	}
	return actions
}

// frameResult is a finished (or abandoned) background render
type frameResult struct {
	img *image.RGBA
	err error
}

// startFrame renders camera in the background so input keeps being polled
func startFrame(ctx context.Context, rt *renderer.Raytracer, camera geometry.Camera, width, height int) <-chan frameResult {
	done := make(chan frameResult, 1)
	go func() {
		sink := renderer.NewImageSink(width, height)
		_, err := rt.RenderFrame(ctx, camera, sink)
		done <- frameResult{img: sink.Image, err: err}
	}()
	return done
}

// blit copies img onto the window surface, upscaling to fill it
func blit(window *sdl.Window, img image.Image) error {
	surface, err := window.GetSurface()
	if err != nil {
		return err
	}
	scaled := output.Scale(img, int(surface.W), int(surface.H))
	bounds := scaled.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			surface.Set(x-bounds.Min.X, y-bounds.Min.Y, scaled.At(x, y))
		}
	}
	return window.UpdateSurface()
}

func run() error {
	sceneName := flag.String("scene", "default", "Scene: built-in name, JSON scene name, or path to a .json file")
	width := flag.Int("width", 0, "Window width (0 = scene default)")
	height := flag.Int("height", 0, "Window height (0 = scene default)")
	scale := flag.Int("scale", 1, "Render at 1/scale resolution and upscale for faster navigation")
	workers := flag.Int("workers", -1, "Number of parallel workers (0 = CPU count, -1 = use SDF_WORKERS)")
	envFile := flag.String("env", ".env", "Environment file with SDF_* settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	s, err := scene.Create(*sceneName)
	if err != nil {
		return err
	}
	if *width > 0 {
		s.Width = *width
	}
	if *height > 0 {
		s.Height = *height
	}
	if *scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", *scale)
	}
	if *workers < 0 {
		*workers = cfg.Workers
	}

	integ, err := integrator.NewSphereTracingIntegrator(s, integrator.DefaultMarchConfig())
	if err != nil {
		return err
	}
	renderWidth, renderHeight := max(1, s.Width / *scale), max(1, s.Height / *scale)
	rt, err := renderer.NewRaytracer(integ, renderer.RenderConfig{
		Width:      renderWidth,
		Height:     renderHeight,
		TileSize:   renderer.DefaultRenderConfig().TileSize,
		NumWorkers: *workers,
	}, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Sphere Marcher - "+s.Name, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(s.Width), int32(s.Height), sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctrl := controller.New(s.Camera, controller.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	pending := startFrame(ctx, rt, ctrl.Camera(), renderWidth, renderHeight)

	for {
		frameStart := sdl.GetTicks()

		changed := false
		for _, action := range pollActions() {
			if action == controller.Quit {
				cancel()
				return nil
			}
			if ctrl.Handle(action) {
				changed = true
			}
		}

		if changed {
			// Abandon the stale frame; it stops at its next tile
			cancel()
			ctx, cancel = context.WithCancel(context.Background())
			pending = startFrame(ctx, rt, ctrl.Camera(), renderWidth, renderHeight)
		}

		select {
		case result := <-pending:
			pending = nil
			if result.err == nil {
				if err := blit(window, result.img); err != nil {
					cancel()
					return err
				}
			}
		default:
		}

		if elapsed := sdl.GetTicks() - frameStart; elapsed < MsPerFrame {
			sdl.Delay(MsPerFrame - elapsed)
		}
	}
}

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
