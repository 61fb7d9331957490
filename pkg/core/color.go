package core

import "image/color"

// Color is an 8-bit RGB color as written to the output sink
type Color struct {
	R, G, B uint8
}

var (
	// Black is used for surfaces the light cannot reach
	Black = Color{0, 0, 0}
	// Background is the color of rays that hit nothing
	Background = Color{50, 50, 50}
)

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA().RGBA()
}

// ToRGBA converts the color to an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Mix blends c1 and c2 per channel as c1*weight + c2*(1-weight).
// The weight is clamped to [0,1] and each channel is truncated into [0,255].
func Mix(c1, c2 Color, weight float64) Color {
	weight = max(0.0, min(1.0, weight))
	inverse := 1.0 - weight
	return Color{
		R: mixChannel(c1.R, c2.R, weight, inverse),
		G: mixChannel(c1.G, c2.G, weight, inverse),
		B: mixChannel(c1.B, c2.B, weight, inverse),
	}
}

func mixChannel(a, b uint8, weight, inverse float64) uint8 {
	v := float64(a)*weight + float64(b)*inverse
	return uint8(max(0.0, min(255.0, v)))
}
