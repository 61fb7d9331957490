package core

import "math"

// Point3D represents a point or displacement in 3D space
type Point3D struct {
	X, Y, Z float64
}

// NewPoint3D creates a new Point3D
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Add returns the sum of two points
func (p Point3D) Add(other Point3D) Point3D {
	return Point3D{p.X + other.X, p.Y + other.Y, p.Z + other.Z}
}

// Subtract returns the difference of two points
func (p Point3D) Subtract(other Point3D) Point3D {
	return Point3D{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// MultiplyVec returns component-wise multiplication of two points
func (p Point3D) MultiplyVec(other Point3D) Point3D {
	return Point3D{p.X * other.X, p.Y * other.Y, p.Z * other.Z}
}

// DivideVec returns component-wise division of two points
func (p Point3D) DivideVec(other Point3D) Point3D {
	return Point3D{p.X / other.X, p.Y / other.Y, p.Z / other.Z}
}

// Multiply returns the point scaled by a scalar
func (p Point3D) Multiply(scalar float64) Point3D {
	return Point3D{p.X * scalar, p.Y * scalar, p.Z * scalar}
}

// Divide returns the point divided by a scalar
func (p Point3D) Divide(scalar float64) Point3D {
	return Point3D{p.X / scalar, p.Y / scalar, p.Z / scalar}
}

// Dot returns the dot product of two points treated as vectors
func (p Point3D) Dot(other Point3D) float64 {
	return p.X*other.X + p.Y*other.Y + p.Z*other.Z
}

// Abs returns the point with every component made non-negative
func (p Point3D) Abs() Point3D {
	return Point3D{math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)}
}

// Max returns the component-wise maximum with a scalar
func (p Point3D) Max(scalar float64) Point3D {
	return Point3D{math.Max(p.X, scalar), math.Max(p.Y, scalar), math.Max(p.Z, scalar)}
}

// Length returns the distance from the origin
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Distance returns the Euclidean distance between two points
func (p Point3D) Distance(other Point3D) float64 {
	return p.Subtract(other).Length()
}

// IsFinite reports whether no component is NaN or infinite
func (p Point3D) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
