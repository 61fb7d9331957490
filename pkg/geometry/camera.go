package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-marcher/pkg/core"
)

// Camera describes the viewpoint of a frame. Angles are in radians.
// Pitch rotates about the lateral axis, yaw about the vertical (Z) axis.
type Camera struct {
	Position core.Point3D
	Pitch    float64
	Yaw      float64
	HFov     float64
}

// NewCamera creates a camera from angles given in degrees
func NewCamera(position core.Point3D, pitchDeg, yawDeg, hfovDeg float64) Camera {
	return Camera{
		Position: position,
		Pitch:    Radians(pitchDeg),
		Yaw:      Radians(yawDeg),
		HFov:     Radians(hfovDeg),
	}
}

// Validate checks that the camera can produce a frame
func (c Camera) Validate() error {
	if !c.Position.IsFinite() {
		return ErrInvalidPosition
	}
	if !(c.HFov > 0 && c.HFov < math.Pi) {
		return fmt.Errorf("hfov %g rad: %w", c.HFov, ErrInvalidFov)
	}
	if math.IsNaN(c.Pitch) || math.IsInf(c.Pitch, 0) || math.IsNaN(c.Yaw) || math.IsInf(c.Yaw, 0) {
		return fmt.Errorf("camera angles must be finite (pitch %g, yaw %g)", c.Pitch, c.Yaw)
	}
	return nil
}

// VFov derives the vertical field of view for a width x height frame
func (c Camera) VFov(width, height int) float64 {
	return 2 * math.Atan(math.Tan(c.HFov/2)*(float64(width)/float64(height)))
}

// RayStep returns the displacement of the given length in the direction
// described by pitch (elevation) and yaw (azimuth in the XY plane).
func RayStep(pitch, yaw, length float64) core.Point3D {
	horizontal := math.Cos(pitch) * length

	return core.Point3D{
		X: math.Cos(yaw) * horizontal,
		Y: math.Sin(yaw) * horizontal,
		Z: math.Sin(pitch) * length,
	}
}

// DirectionTo returns the pitch and yaw that RayStep needs to travel from one
// point towards another. ok is false when the points coincide.
func DirectionTo(from, to core.Point3D) (pitch, yaw float64, ok bool) {
	d := to.Subtract(from)
	total := d.Length()
	if total == 0 {
		return 0, 0, false
	}

	planar := math.Hypot(d.X, d.Y)
	if planar == 0 {
		// Straight up or down, yaw is arbitrary.
		return math.Copysign(math.Pi/2, d.Z), 0, true
	}

	pitch = math.Acos(clampUnit(planar / total))
	yaw = math.Acos(clampUnit(d.X / planar))

	// acos only covers [0, π]; take the signs back from the displacement.
	pitch = math.Copysign(pitch, d.Z)
	yaw = math.Copysign(yaw, d.Y)
	return pitch, yaw, true
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clampUnit(v float64) float64 {
	return max(-1.0, min(1.0, v))
}
