package renderer

import (
	"image"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// Sink receives the pixels of a finished frame
type Sink interface {
	SetPixel(x, y uint32, c core.Color)
}

// ImageSink writes pixels into an RGBA image
type ImageSink struct {
	Image *image.RGBA
}

// NewImageSink creates a sink backed by a new width x height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSink) SetPixel(x, y uint32, c core.Color) {
	s.Image.SetRGBA(int(x), int(y), c.ToRGBA())
}

// Frame is a rendered buffer of pixel colors in row-major order
type Frame struct {
	Width, Height int
	Pixels        []core.Color
}

// NewFrame allocates a width x height frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color at (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at (x, y)
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// WriteTo sends every pixel to the sink, all columns of a row before the next row
func (f *Frame) WriteTo(sink Sink) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			sink.SetPixel(uint32(x), uint32(y), f.Pixels[y*f.Width+x])
		}
	}
}

// Image converts the frame to an RGBA image
func (f *Frame) Image() *image.RGBA {
	sink := NewImageSink(f.Width, f.Height)
	f.WriteTo(sink)
	return sink.Image
}
