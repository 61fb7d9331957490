package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about a rendered frame or tile
type RenderStats struct {
	TotalPixels   int           // Pixels covered
	SampledPixels int           // Pixels actually shaded (fewer on coarse passes)
	Hits          int           // Primary rays that reached a surface
	Misses        int           // Primary rays that ended on the background
	TotalSteps    int           // Primary march iterations
	AverageSteps  float64       // Primary march iterations per sampled pixel
	Elapsed       time.Duration // Wall time, set for whole frames
}

// add accumulates tile statistics into a frame total
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.SampledPixels += other.SampledPixels
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.TotalSteps += other.TotalSteps
}

// finalize calculates averages after all tiles are added
func (s *RenderStats) finalize() {
	if s.SampledPixels > 0 {
		s.AverageSteps = float64(s.TotalSteps) / float64(s.SampledPixels)
	}
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535 + 0.7152*float64(g)/65535 + 0.0722*float64(b)/65535
		}
	}
	return total / float64(pixels)
}
