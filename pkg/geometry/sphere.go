package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// Sphere represents a sphere surface
type Sphere struct {
	Center     core.Point3D
	Radius     float64
	BaseColor  core.Color
	Reflection float64
}

// NewSphere creates a new sphere, rejecting degenerate geometry
func NewSphere(center core.Point3D, radius float64, color core.Color, reflectivity float64) (*Sphere, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("sphere at %v: %w", center, ErrInvalidCenter)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere at %v with radius %g: %w", center, radius, ErrInvalidRadius)
	}
	if err := ValidateReflectivity(reflectivity); err != nil {
		return nil, fmt.Errorf("sphere at %v with reflectivity %g: %w", center, reflectivity, err)
	}

	return &Sphere{
		Center:     center,
		Radius:     radius,
		BaseColor:  color,
		Reflection: reflectivity,
	}, nil
}

// Distance returns the signed distance from point to the sphere surface
func (s *Sphere) Distance(point core.Point3D) float64 {
	return point.Distance(s.Center) - s.Radius
}

// Color returns the sphere's base color
func (s *Sphere) Color() core.Color {
	return s.BaseColor
}

// Reflectivity returns how much reflected light contributes to the sphere's color
func (s *Sphere) Reflectivity() float64 {
	return s.Reflection
}
