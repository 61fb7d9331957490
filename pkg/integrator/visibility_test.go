package integrator

import (
	"testing"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

func TestCanSee(t *testing.T) {
	tests := []struct {
		name     string
		from, to core.Point3D
		sphere   [5]float64
		expected bool
	}{
		{
			name:     "clear path along x",
			from:     core.NewPoint3D(0, 0, 0),
			to:       core.NewPoint3D(10, 0, 0),
			sphere:   [5]float64{0, 10, 0, 1, 0},
			expected: true,
		},
		{
			name:     "blocked along x",
			from:     core.NewPoint3D(0, 0, 0),
			to:       core.NewPoint3D(10, 0, 0),
			sphere:   [5]float64{5, 0, 0, 1, 0},
			expected: false,
		},
		{
			name:     "clear path into negative octant",
			from:     core.NewPoint3D(0, 0, 0),
			to:       core.NewPoint3D(-3, -4, -5),
			sphere:   [5]float64{10, 10, 10, 1, 0},
			expected: true,
		},
		{
			name:     "blocked in negative octant",
			from:     core.NewPoint3D(0, 0, 0),
			to:       core.NewPoint3D(-3, -4, -5),
			sphere:   [5]float64{-1.5, -2, -2.5, 0.5, 0},
			expected: false,
		},
		{
			name:     "clear path straight up",
			from:     core.NewPoint3D(2, 2, 0),
			to:       core.NewPoint3D(2, 2, 5),
			sphere:   [5]float64{2, 2, -5, 1, 0},
			expected: true,
		},
		{
			name:     "blocked straight up",
			from:     core.NewPoint3D(2, 2, 0),
			to:       core.NewPoint3D(2, 2, 5),
			sphere:   [5]float64{2, 2, 2.5, 0.5, 0},
			expected: false,
		},
		{
			name:     "point at the light",
			from:     core.NewPoint3D(1, 1, 1),
			to:       core.NewPoint3D(1, 1, 1),
			sphere:   [5]float64{5, 0, 0, 1, 0},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := createTestScene(t, tt.sphere)
			got := CanSee(tt.from, tt.to, sc, DefaultMarchConfig())
			if got != tt.expected {
				t.Errorf("CanSee(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func directionOrFail(t *testing.T, from, to core.Point3D) (float64, float64, bool) {
	t.Helper()
	pitch, yaw, ok := geometry.DirectionTo(from, to)
	if !ok {
		t.Fatalf("No direction from %v to %v", from, to)
	}
	return pitch, yaw, ok
}
