package integrator

import (
	"errors"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// Integrator computes the color seen along a ray
type Integrator interface {
	// RayColor shades the ray leaving origin in the direction (pitch, yaw)
	RayColor(origin core.Point3D, pitch, yaw float64) RaycastResult
}

// MarchConfig contains the sphere-tracing limits. They are fixed for a render.
type MarchConfig struct {
	MaxSteps           int        // Iteration budget per march
	CollisionTolerance float64    // Distance at or below which a ray has hit
	StartOffset        float64    // Initial advance so a ray does not re-hit the surface it leaves
	Bounces            int        // Reflection recursion depth
	Background         core.Color // Color of rays that hit nothing
}

// DefaultMarchConfig returns the reference limits
func DefaultMarchConfig() MarchConfig {
	return MarchConfig{
		MaxSteps:           25,
		CollisionTolerance: 0.0001,
		StartOffset:        0.01,
		Bounces:            2,
		Background:         core.Background,
	}
}

// Validate checks that the limits guarantee a terminating march
func (c MarchConfig) Validate() error {
	if c.MaxSteps <= 0 {
		return errors.New("max steps must be positive")
	}
	if !(c.CollisionTolerance > 0) {
		return errors.New("collision tolerance must be positive")
	}
	if !(c.StartOffset > 0) {
		return errors.New("start offset must be positive")
	}
	if c.Bounces < 0 {
		return errors.New("bounces must not be negative")
	}
	return nil
}

// RaycastResult is the outcome of shading one ray
type RaycastResult struct {
	Position     core.Point3D // Hit position, zero on a miss
	Color        core.Color
	Reflectivity float64 // Reflectivity at the hit, zero on a miss
	Hit          bool
	Steps        int // Iterations used by the primary march
}
