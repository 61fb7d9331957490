package scene

import (
	"math"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

// oklchToRGB converts OKLCH color space to sRGB
// L: lightness (0-1), C: chroma (0-0.4), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(unitToByte(r), unitToByte(g), unitToByte(blue))
}

// unitToByte clamps v to [0, 1] and scales it to a color channel
func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

const (
	sphereGridSize    = 5
	sphereGridSpacing = 2.5
	sphereGridRadius  = 0.8
	sphereGridFloorZ  = -1.0
)

// NewSphereGridScene creates a 5x5 grid of spheres resting on a grey ground
// plane. Hue varies along the depth axis and chroma and reflectivity vary
// across it.
func NewSphereGridScene() *Scene {
	surfaces := []geometry.Surface{}

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			center := core.NewPoint3D(
				6+float64(i)*sphereGridSpacing,
				float64(j-sphereGridSize/2)*sphereGridSpacing,
				sphereGridFloorZ+sphereGridRadius,
			)

			t := float64(j) / float64(sphereGridSize-1)
			hue := float64(i) / float64(sphereGridSize) * 360.0
			chroma := minChroma + t*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			surfaces = append(surfaces, mustSphere(center, sphereGridRadius, oklchToRGB(lightness, chroma, hue), 0.2+0.6*t))
		}
	}

	ground, err := geometry.NewPlane(core.NewPoint3D(0, 0, sphereGridFloorZ), core.NewPoint3D(0, 0, 1), core.NewColor(120, 120, 120), 0.1)
	if err != nil {
		panic(err)
	}
	surfaces = append(surfaces, ground)

	s := mustNew(surfaces...)
	s.Name = "sphere-grid"
	s.Light = Light{Position: core.NewPoint3D(10, -4, 10)}
	s.Camera = geometry.NewCamera(core.NewPoint3D(0, 0, 2.5), -15, 0, 75)
	return s
}
