package integrator

import (
	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// CanSee reports whether nothing blocks the line from a point to the light.
// Any convergence of the march counts as occluded.
func CanSee(from, to core.Point3D, scene Distancer, config MarchConfig) bool {
	pitch, yaw, ok := geometry.DirectionTo(from, to)
	if !ok {
		// The point is at the light.
		return true
	}
	return !March(from, pitch, yaw, scene, config).Hit
}
