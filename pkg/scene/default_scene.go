package scene

import (
	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// NewDefaultScene creates the six-sphere scene, viewed from the origin
// looking down +X with a 90° horizontal field of view.
func NewDefaultScene() *Scene {
	red := core.NewColor(255, 0, 0)
	green := core.NewColor(0, 255, 0)
	blue := core.NewColor(0, 0, 255)

	s := mustNew(
		mustSphere(core.NewPoint3D(5, 0, 0), 2, red, 1.0),
		mustSphere(core.NewPoint3D(0, -5, 0), 2, green, 1.0),
		mustSphere(core.NewPoint3D(5, 5, 0), 2, red, 0.9),
		mustSphere(core.NewPoint3D(5, 10, 0), 2, red, 0.25),
		mustSphere(core.NewPoint3D(11, 0, 3), 2, red, 0.1),
		mustSphere(core.NewPoint3D(8, -3, -3.5), 3, blue, 0.5),
	)
	s.Name = "default"
	return s
}

// NewSingleSphereScene creates one red mirror sphere in front of the camera
func NewSingleSphereScene() *Scene {
	s := mustNew(mustSphere(core.NewPoint3D(5, 0, 0), 2, core.NewColor(255, 0, 0), 1.0))
	s.Name = "single-sphere"
	return s
}

// mustSphere is for hardcoded scenes whose parameters are known to be valid
func mustSphere(center core.Point3D, radius float64, color core.Color, reflectivity float64) geometry.Surface {
	sphere, err := geometry.NewSphere(center, radius, color, reflectivity)
	if err != nil {
		panic(err)
	}
	return sphere
}

func mustNew(surfaces ...geometry.Surface) *Scene {
	s, err := New(surfaces...)
	if err != nil {
		panic(err)
	}
	return s
}
