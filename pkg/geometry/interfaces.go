package geometry

import (
	"errors"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// Surface is anything the marcher can render: a signed distance function
// with a base color and a reflectivity.
type Surface interface {
	// Distance returns the signed distance from point to the surface,
	// negative inside, zero on the surface and positive outside.
	Distance(point core.Point3D) float64
	Color() core.Color
	Reflectivity() float64
}

var (
	ErrInvalidRadius       = errors.New("radius must be positive and finite")
	ErrInvalidReflectivity = errors.New("reflectivity must be within [0, 1]")
	ErrInvalidCenter       = errors.New("center must be finite")
	ErrInvalidFov          = errors.New("horizontal field of view must be within (0, 180) degrees")
	ErrInvalidPosition     = errors.New("camera position must be finite")
)

// ValidateReflectivity checks that r is a usable reflectivity coefficient
func ValidateReflectivity(r float64) error {
	if !(r >= 0 && r <= 1) { // also rejects NaN
		return ErrInvalidReflectivity
	}
	return nil
}
