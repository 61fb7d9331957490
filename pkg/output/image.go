// Package output persists and delivers rendered frames.
package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// SaveImage writes img to path. The format follows the file extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Scale resizes img with nearest-neighbor sampling so each rendered pixel
// stays a crisp block
func Scale(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}

// ScaleBy multiplies both dimensions of img by factor
func ScaleBy(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	bounds := img.Bounds()
	return Scale(img, bounds.Dx()*factor, bounds.Dy()*factor)
}

// EncodePNG encodes img as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
