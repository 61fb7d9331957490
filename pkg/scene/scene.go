package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/loaders"
)

// ErrEmptyScene is returned when a scene is built without surfaces
var ErrEmptyScene = errors.New("scene must contain at least one surface")

// Light is a point light. Illumination is binary: a point either sees it or not.
type Light struct {
	Position core.Point3D
}

// DefaultLight returns the light used by the built-in scenes
func DefaultLight() Light {
	return Light{Position: core.NewPoint3D(2, 2, 5)}
}

// Scene contains everything needed to render a frame. It must not be
// modified while a frame is in flight.
type Scene struct {
	Name     string
	Surfaces []geometry.Surface // Order is fixed; ties resolve to the lowest index
	Light    Light
	Camera   geometry.Camera // Starting camera
	Width    int             // Recommended frame width
	Height   int             // Recommended frame height
}

// New creates a scene with the default light, camera and frame size
func New(surfaces ...geometry.Surface) (*Scene, error) {
	if len(surfaces) == 0 {
		return nil, ErrEmptyScene
	}
	for i, s := range surfaces {
		if s == nil {
			return nil, fmt.Errorf("surface %d is nil", i)
		}
	}

	return &Scene{
		Name:     "custom",
		Surfaces: surfaces,
		Light:    DefaultLight(),
		Camera:   geometry.NewCamera(core.NewPoint3D(0, 0, 0), 0, 0, 90),
		Width:    500,
		Height:   500,
	}, nil
}

// NewFromFile builds a scene from a decoded JSON scene file
func NewFromFile(sf *loaders.SceneFile) (*Scene, error) {
	surfaces, err := sf.Surfaces()
	if err != nil {
		return nil, err
	}

	s, err := New(surfaces...)
	if err != nil {
		return nil, err
	}

	if sf.Name != "" {
		s.Name = sf.Name
	}
	s.Light = Light{Position: sf.Light.Position.Point()}
	s.Camera = sf.CameraValue()
	if sf.Width > 0 {
		s.Width = sf.Width
	}
	if sf.Height > 0 {
		s.Height = sf.Height
	}

	if err := s.Camera.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return s, nil
}

// MinDistance returns the smallest signed distance from point to any surface,
// with the index of that surface. Ties go to the lowest index.
func (s *Scene) MinDistance(point core.Point3D) (float64, int) {
	minDist := s.Surfaces[0].Distance(point)
	minIndex := 0
	for i := 1; i < len(s.Surfaces); i++ {
		if d := s.Surfaces[i].Distance(point); d < minDist {
			minDist = d
			minIndex = i
		}
	}
	return minDist, minIndex
}

// Surface returns the surface at index i
func (s *Scene) Surface(i int) geometry.Surface {
	return s.Surfaces[i]
}
