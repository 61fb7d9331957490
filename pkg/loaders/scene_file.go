package loaders

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// Vec3Cfg is a point written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

// Point converts the config value to a core.Point3D
func (v Vec3Cfg) Point() core.Point3D {
	return core.NewPoint3D(v[0], v[1], v[2])
}

// CameraCfg describes the starting camera. Angles are in degrees.
type CameraCfg struct {
	Position Vec3Cfg `json:"position"`
	PitchDeg float64 `json:"pitchDeg"`
	YawDeg   float64 `json:"yawDeg"`
	HFovDeg  float64 `json:"hfovDeg"`
}

type LightCfg struct {
	Position Vec3Cfg `json:"position"`
}

type SphereCfg struct {
	Center       Vec3Cfg `json:"center"`
	Radius       float64 `json:"radius"`
	Color        string  `json:"color"` // hex, e.g. "#ff0000"
	Reflectivity float64 `json:"reflectivity"`
}

type PlaneCfg struct {
	Point        Vec3Cfg `json:"point"`
	Normal       Vec3Cfg `json:"normal"`
	Color        string  `json:"color"`
	Reflectivity float64 `json:"reflectivity"`
}

type BoxCfg struct {
	Center       Vec3Cfg `json:"center"`
	Size         Vec3Cfg `json:"size"` // half-extents
	Color        string  `json:"color"`
	Reflectivity float64 `json:"reflectivity"`
}

// SceneFile is the on-disk JSON description of a scene
type SceneFile struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	Camera      CameraCfg   `json:"camera"`
	Light       LightCfg    `json:"light"`
	Spheres     []SphereCfg `json:"spheres"`
	Planes      []PlaneCfg  `json:"planes,omitempty"`
	Boxes       []BoxCfg    `json:"boxes,omitempty"`
}

// LoadSceneFile reads and decodes a JSON scene file
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseSceneFile(data)
}

// ParseSceneFile decodes a JSON scene description
func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if sf.Camera.HFovDeg == 0 {
		sf.Camera.HFovDeg = 90
	}
	return &sf, nil
}

// CameraValue returns the configured camera
func (sf *SceneFile) CameraValue() geometry.Camera {
	c := sf.Camera
	return geometry.NewCamera(c.Position.Point(), c.PitchDeg, c.YawDeg, c.HFovDeg)
}

// Surfaces builds validated surfaces: spheres, then planes, then boxes,
// each in file order
func (sf *SceneFile) Surfaces() ([]geometry.Surface, error) {
	surfaces := make([]geometry.Surface, 0, len(sf.Spheres)+len(sf.Planes)+len(sf.Boxes))
	for i, s := range sf.Spheres {
		color, err := ParseHexColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		sphere, err := geometry.NewSphere(s.Center.Point(), s.Radius, color, s.Reflectivity)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		surfaces = append(surfaces, sphere)
	}
	for i, p := range sf.Planes {
		color, err := ParseHexColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		plane, err := geometry.NewPlane(p.Point.Point(), p.Normal.Point(), color, p.Reflectivity)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		surfaces = append(surfaces, plane)
	}
	for i, b := range sf.Boxes {
		color, err := ParseHexColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		box, err := geometry.NewBox(b.Center.Point(), b.Size.Point(), color, b.Reflectivity)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		surfaces = append(surfaces, box)
	}
	return surfaces, nil
}

// ParseHexColor parses "#rgb" or "#rrggbb" into a color
func ParseHexColor(s string) (core.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return core.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return core.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
	}

	c := fauxgl.HexColor(hex)
	return core.NewColor(toByte(c.R), toByte(c.G), toByte(c.B)), nil
}

func toByte(v float64) uint8 {
	return uint8(math.Round(max(0.0, min(1.0, v)) * 255))
}
