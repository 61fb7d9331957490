package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-marcher/pkg/config"
	"github.com/df07/go-sphere-marcher/pkg/output"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, opts options)
	}{
		{"defaults", nil, false, func(t *testing.T, opts options) {
			if opts.Scene != "default" || opts.Bounces != 2 || opts.MaxSteps != 25 || opts.Scale != 1 {
				t.Errorf("Unexpected defaults: %+v", opts)
			}
		}},
		{"overrides", []string{"-scene", "single-sphere", "-width", "64", "-height", "48", "-bounces", "0", "-scale", "2"}, false, func(t *testing.T, opts options) {
			if opts.Scene != "single-sphere" || opts.Width != 64 || opts.Height != 48 || opts.Bounces != 0 || opts.Scale != 2 {
				t.Errorf("Unexpected options: %+v", opts)
			}
		}},
		{"zero scale", []string{"-scale", "0"}, true, nil},
		{"negative width", []string{"-width", "-5"}, true, nil},
		{"unknown flag", []string{"-samples", "10"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"single sphere", "single-sphere", false},
		{"json scene by name", "mirror-row", false},
		{"json scene by path", filepath.Join("scenes", "shadow-pair.json"), false},
		{"unknown scene", "nonexistent", true},
		{"missing json path", filepath.Join("scenes", "nonexistent.json"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(options{Scene: tt.sceneName, Width: 32})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene '%s'", tt.sceneName)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneName, err)
			}
			if s.Width != 32 {
				t.Errorf("Expected width override 32, got %d", s.Width)
			}
			if s.Height <= 0 {
				t.Errorf("Scene height should be positive, got %d", s.Height)
			}
		})
	}
}

func TestRun_SavesScaledImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	opts := options{Scene: "single-sphere", Width: 20, Height: 10, Workers: 2, Bounces: 2, MaxSteps: 25, Out: out, Scale: 2}

	var stdout bytes.Buffer
	path, err := run(context.Background(), opts, config.Default(), &stdout)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if path != out {
		t.Errorf("Expected output path %s, got %s", out, path)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("Failed to open rendered image: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("Expected 40x20 image, got %v", img.Bounds())
	}
	if !strings.Contains(stdout.String(), "Render saved as") {
		t.Errorf("Expected save message, got %q", stdout.String())
	}
}

func TestRun_DefaultOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	opts := options{Scene: "default", Width: 8, Height: 8, Bounces: 1, MaxSteps: 10, Scale: 1}

	path, err := run(context.Background(), opts, cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(cfg.OutputDir, "default") {
		t.Errorf("Expected render under %s/default, got %s", cfg.OutputDir, path)
	}
}

func TestRun_UploadWithoutBucket(t *testing.T) {
	opts := options{Scene: "default", Width: 4, Height: 4, Bounces: 0, MaxSteps: 5, Scale: 1,
		Out: filepath.Join(t.TempDir(), "f.png"), S3Key: "frames/f.png"}

	_, err := run(context.Background(), opts, config.Default(), &bytes.Buffer{})
	if !errors.Is(err, output.ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket, got %v", err)
	}
}

func TestListScenes(t *testing.T) {
	var buf bytes.Buffer
	if err := listScenes(&buf); err != nil {
		t.Fatalf("listScenes failed: %v", err)
	}
	for _, id := range []string{"default", "single-sphere", "mirror-row"} {
		if !strings.Contains(buf.String(), id) {
			t.Errorf("Expected %s in scene list, got %q", id, buf.String())
		}
	}
}
