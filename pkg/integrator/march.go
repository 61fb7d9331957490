package integrator

import (
	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// Distancer is the part of a scene the march needs
type Distancer interface {
	MinDistance(point core.Point3D) (float64, int)
}

// MarchResult describes where a march converged, if it did
type MarchResult struct {
	Hit          bool
	Position     core.Point3D // Last position reached
	SurfaceIndex int          // Nearest surface at the hit, -1 on a miss
	Steps        int          // Iterations used; MaxSteps on a miss
}

// March sphere-traces from origin along (pitch, yaw). Each iteration advances
// by the scene's minimum distance, which can never overshoot the nearest surface.
func March(origin core.Point3D, pitch, yaw float64, scene Distancer, config MarchConfig) MarchResult {
	pos := origin.Add(geometry.RayStep(pitch, yaw, config.StartOffset))

	for i := 0; i < config.MaxSteps; i++ {
		dist, index := scene.MinDistance(pos)
		if dist <= config.CollisionTolerance {
			return MarchResult{
				Hit:          true,
				Position:     pos,
				SurfaceIndex: index,
				Steps:        i + 1,
			}
		}
		pos = pos.Add(geometry.RayStep(pitch, yaw, dist))
	}

	return MarchResult{
		Hit:          false,
		Position:     pos,
		SurfaceIndex: -1,
		Steps:        config.MaxSteps,
	}
}
