package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestRenderStats_AddAndFinalize(t *testing.T) {
	var total RenderStats
	total.add(RenderStats{TotalPixels: 16, SampledPixels: 4, Hits: 3, Misses: 1, TotalSteps: 20})
	total.add(RenderStats{TotalPixels: 16, SampledPixels: 4, Hits: 0, Misses: 4, TotalSteps: 100})
	total.finalize()

	if total.TotalPixels != 32 || total.SampledPixels != 8 {
		t.Errorf("Expected 32 pixels with 8 sampled, got %d with %d sampled", total.TotalPixels, total.SampledPixels)
	}
	if total.Hits != 3 || total.Misses != 5 {
		t.Errorf("Expected 3 hits and 5 misses, got %d and %d", total.Hits, total.Misses)
	}
	if total.AverageSteps != 15 {
		t.Errorf("Expected average of 15 steps, got %f", total.AverageSteps)
	}
}

func TestRenderStats_FinalizeWithoutSamples(t *testing.T) {
	var stats RenderStats
	stats.finalize()
	if stats.AverageSteps != 0 {
		t.Errorf("Expected 0 average steps for an empty frame, got %f", stats.AverageSteps)
	}
}
