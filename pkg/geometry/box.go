package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// ErrInvalidSize is returned for boxes without volume
var ErrInvalidSize = errors.New("box half-extents must be positive and finite")

// Box represents an axis-aligned rectangular box
type Box struct {
	Center     core.Point3D // Center point of the box
	Size       core.Point3D // Half-extents along each axis
	BaseColor  core.Color
	Reflection float64
}

// NewBox creates a new axis-aligned box.
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box).
func NewBox(center, size core.Point3D, color core.Color, reflectivity float64) (*Box, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("box at %v: %w", center, ErrInvalidCenter)
	}
	if !size.IsFinite() || !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return nil, fmt.Errorf("box at %v with size %v: %w", center, size, ErrInvalidSize)
	}
	if err := ValidateReflectivity(reflectivity); err != nil {
		return nil, fmt.Errorf("box at %v with reflectivity %g: %w", center, reflectivity, err)
	}

	return &Box{
		Center:     center,
		Size:       size,
		BaseColor:  color,
		Reflection: reflectivity,
	}, nil
}

// Distance returns the exact signed distance to the box: the length of the
// outside excess plus the (negative) depth of the nearest face when inside.
func (b *Box) Distance(point core.Point3D) float64 {
	q := point.Subtract(b.Center).Abs().Subtract(b.Size)
	outside := q.Max(0).Length()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

func (b *Box) Color() core.Color {
	return b.BaseColor
}

func (b *Box) Reflectivity() float64 {
	return b.Reflection
}
