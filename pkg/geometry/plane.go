package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// ErrInvalidNormal is returned for planes whose normal has no direction
var ErrInvalidNormal = errors.New("plane normal must be finite and non-zero")

// Plane represents an infinite plane defined by a point and normal.
// Points on the normal's side are outside.
type Plane struct {
	Point      core.Point3D // A point on the plane
	Normal     core.Point3D // Unit normal
	BaseColor  core.Color
	Reflection float64
}

// NewPlane creates a new plane, normalizing the normal
func NewPlane(point, normal core.Point3D, color core.Color, reflectivity float64) (*Plane, error) {
	if !point.IsFinite() {
		return nil, fmt.Errorf("plane through %v: %w", point, ErrInvalidCenter)
	}
	length := normal.Length()
	if !normal.IsFinite() || length == 0 {
		return nil, fmt.Errorf("plane through %v with normal %v: %w", point, normal, ErrInvalidNormal)
	}
	if err := ValidateReflectivity(reflectivity); err != nil {
		return nil, fmt.Errorf("plane through %v with reflectivity %g: %w", point, reflectivity, err)
	}

	return &Plane{
		Point:      point,
		Normal:     normal.Divide(length), // Ensure normal is normalized
		BaseColor:  color,
		Reflection: reflectivity,
	}, nil
}

// Distance returns the signed distance from point to the plane
func (p *Plane) Distance(point core.Point3D) float64 {
	return point.Subtract(p.Point).Dot(p.Normal)
}

func (p *Plane) Color() core.Color {
	return p.BaseColor
}

func (p *Plane) Reflectivity() float64 {
	return p.Reflection
}
