package integrator

import (
	"math"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/scene"
)

// SphereTracingIntegrator shades rays with hard shadows and mirror reflections
type SphereTracingIntegrator struct {
	scene  *scene.Scene
	config MarchConfig
}

// NewSphereTracingIntegrator creates a new integrator for a scene
func NewSphereTracingIntegrator(s *scene.Scene, config MarchConfig) (*SphereTracingIntegrator, error) {
	if s == nil || len(s.Surfaces) == 0 {
		return nil, scene.ErrEmptyScene
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SphereTracingIntegrator{scene: s, config: config}, nil
}

// Config returns the march configuration
func (st *SphereTracingIntegrator) Config() MarchConfig {
	return st.config
}

// RayColor shades a primary ray with the full reflection budget
func (st *SphereTracingIntegrator) RayColor(origin core.Point3D, pitch, yaw float64) RaycastResult {
	return Shade(origin, pitch, yaw, st.scene, st.scene.Light, st.config.Bounces, st.config)
}

// Shade marches a ray, resolves the light at the hit, and blends in the
// reflection. Recursion depth is bounded by bounces.
func Shade(origin core.Point3D, pitch, yaw float64, s *scene.Scene, light scene.Light, bounces int, config MarchConfig) RaycastResult {
	march := March(origin, pitch, yaw, s, config)
	if !march.Hit {
		return RaycastResult{
			Color: config.Background,
			Steps: march.Steps,
		}
	}

	surface := s.Surface(march.SurfaceIndex)
	result := RaycastResult{
		Position:     march.Position,
		Color:        core.Black,
		Reflectivity: surface.Reflectivity(), // kept even in shadow
		Hit:          true,
		Steps:        march.Steps,
	}
	if CanSee(march.Position, light.Position, s, config) {
		result.Color = surface.Color()
	}

	if bounces > 0 {
		reflection := Shade(march.Position, math.Pi-pitch, math.Pi-yaw, s, light, bounces-1, config)
		result.Color = core.Mix(reflection.Color, result.Color, result.Reflectivity)
	}

	return result
}
