package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-marcher/pkg/config"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
	"github.com/df07/go-sphere-marcher/pkg/output"
	"github.com/df07/go-sphere-marcher/pkg/renderer"
	"github.com/df07/go-sphere-marcher/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene    string
	Width    int
	Height   int
	Workers  int
	Bounces  int
	MaxSteps int
	Out      string
	Scale    int
	S3Key    string
	EnvFile  string
	List     bool
	Help     bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	defaults := integrator.DefaultMarchConfig()

	fs := flag.NewFlagSet("sphere-marcher", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Scene, "scene", "default", "Scene: built-in name, JSON scene name, or path to a .json file")
	fs.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.Workers, "workers", -1, "Number of parallel workers (0 = CPU count, -1 = use SDF_WORKERS)")
	fs.IntVar(&opts.Bounces, "bounces", defaults.Bounces, "Maximum reflection bounces")
	fs.IntVar(&opts.MaxSteps, "max-steps", defaults.MaxSteps, "Maximum march steps per ray")
	fs.StringVar(&opts.Out, "out", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	fs.IntVar(&opts.Scale, "scale", 1, "Integer upscale factor for the saved image")
	fs.StringVar(&opts.S3Key, "s3-key", "", "Also upload the PNG to S3 under this key")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file with SDF_* settings")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, fs, err
	}
	if opts.Scale < 1 {
		return options{}, fs, fmt.Errorf("scale must be at least 1, got %d", opts.Scale)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return options{}, fs, fmt.Errorf("width and height must not be negative")
	}
	return opts, fs, nil
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.Help {
		printHelp(os.Stdout, fs)
		return
	}
	if opts.List {
		if err := listScenes(os.Stdout); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if _, err := run(context.Background(), opts, cfg, os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Marcher")
	fmt.Fprintln(w, "Usage: sphere-marcher [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use -list to see available scenes.")
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
		} else {
			fmt.Fprintf(w, "  %s\n", info.ID)
		}
	}
	return nil
}

// createScene resolves a scene name and applies size overrides
func createScene(opts options) (*scene.Scene, error) {
	s, err := scene.Create(opts.Scene)
	if err != nil {
		return nil, err
	}
	if opts.Width > 0 {
		s.Width = opts.Width
	}
	if opts.Height > 0 {
		s.Height = opts.Height
	}
	return s, nil
}

// run renders one frame, saves it, and optionally uploads it. It returns the saved path.
func run(ctx context.Context, opts options, cfg config.Config, stdout io.Writer) (string, error) {
	fmt.Fprintln(stdout, "Starting Sphere Marcher...")

	s, err := createScene(opts)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(stdout, "Using %s scene (%dx%d)...\n", s.Name, s.Width, s.Height)

	marchConfig := integrator.DefaultMarchConfig()
	marchConfig.Bounces = opts.Bounces
	marchConfig.MaxSteps = opts.MaxSteps
	integ, err := integrator.NewSphereTracingIntegrator(s, marchConfig)
	if err != nil {
		return "", err
	}

	workers := opts.Workers
	if workers < 0 {
		workers = cfg.Workers
	}
	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.Width = s.Width
	renderConfig.Height = s.Height
	renderConfig.NumWorkers = workers

	rt, err := renderer.NewRaytracer(integ, renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		return "", err
	}

	sink := renderer.NewImageSink(s.Width, s.Height)
	stats, err := rt.RenderFrame(ctx, s.Camera, sink)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(stdout, "Render completed in %v\n", stats.Elapsed)
	fmt.Fprintf(stdout, "Hits: %d, misses: %d, average march steps: %.1f\n", stats.Hits, stats.Misses, stats.AverageSteps)

	img := output.ScaleBy(sink.Image, opts.Scale)

	filename := opts.Out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(cfg.OutputDir, s.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	if err := output.SaveImage(img, filename); err != nil {
		return "", err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)

	if opts.S3Key != "" {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return filename, err
		}
		data, err := output.EncodePNG(img)
		if err != nil {
			return filename, err
		}
		if err := uploader.Upload(ctx, opts.S3Key, data); err != nil {
			return filename, err
		}
	}

	return filename, nil
}
