package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
)

const testSceneJSON = `{
  "name": "two-spheres",
  "width": 320,
  "height": 240,
  "camera": {"position": [0, 0, 1], "pitchDeg": 10, "yawDeg": -5, "hfovDeg": 60},
  "light": {"position": [2, 2, 5]},
  "spheres": [
    {"center": [5, 0, 0], "radius": 2, "color": "#ff0000", "reflectivity": 1.0},
    {"center": [0, -5, 0], "radius": 1.5, "color": "#0f0", "reflectivity": 0.25}
  ]
}`

func TestParseSceneFile(t *testing.T) {
	sf, err := ParseSceneFile([]byte(testSceneJSON))
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}

	if sf.Name != "two-spheres" || sf.Width != 320 || sf.Height != 240 {
		t.Errorf("Unexpected header fields: %+v", sf)
	}
	if len(sf.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(sf.Spheres))
	}

	camera := sf.CameraValue()
	if camera.Position != core.NewPoint3D(0, 0, 1) {
		t.Errorf("Expected camera at (0,0,1), got %v", camera.Position)
	}
	if camera.HFov != geometry.Radians(60) {
		t.Errorf("Expected hfov 60°, got %f rad", camera.HFov)
	}

	surfaces, err := sf.Surfaces()
	if err != nil {
		t.Fatalf("Unexpected error building surfaces: %v", err)
	}
	if len(surfaces) != 2 {
		t.Fatalf("Expected 2 surfaces, got %d", len(surfaces))
	}
	if surfaces[0].Color() != core.NewColor(255, 0, 0) {
		t.Errorf("Expected first sphere red, got %v", surfaces[0].Color())
	}
	if surfaces[1].Color() != core.NewColor(0, 255, 0) {
		t.Errorf("Expected second sphere green, got %v", surfaces[1].Color())
	}
	if surfaces[1].Reflectivity() != 0.25 {
		t.Errorf("Expected reflectivity 0.25, got %f", surfaces[1].Reflectivity())
	}
}

func TestParseSceneFileDefaultsFov(t *testing.T) {
	sf, err := ParseSceneFile([]byte(`{"spheres": []}`))
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if sf.Camera.HFovDeg != 90 {
		t.Errorf("Expected default hfov 90, got %f", sf.Camera.HFovDeg)
	}
}

func TestSceneFileRejectsInvalidSpheres(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"negative radius", `{"spheres":[{"center":[0,0,0],"radius":-1,"color":"#fff","reflectivity":0}]}`, geometry.ErrInvalidRadius},
		{"reflectivity too high", `{"spheres":[{"center":[0,0,0],"radius":1,"color":"#fff","reflectivity":2}]}`, geometry.ErrInvalidReflectivity},
		{"zero plane normal", `{"planes":[{"point":[0,0,0],"normal":[0,0,0],"color":"#fff"}]}`, geometry.ErrInvalidNormal},
		{"flat box", `{"boxes":[{"center":[0,0,0],"size":[1,0,1],"color":"#fff"}]}`, geometry.ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := ParseSceneFile([]byte(tt.json))
			if err != nil {
				t.Fatalf("Unexpected parse error: %v", err)
			}
			if _, err := sf.Surfaces(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Color
		wantErr  bool
	}{
		{"#ff0000", core.NewColor(255, 0, 0), false},
		{"00ff00", core.NewColor(0, 255, 0), false},
		{"#0000FF", core.NewColor(0, 0, 255), false},
		{"#323232", core.NewColor(50, 50, 50), false},
		{"#fff", core.NewColor(255, 255, 255), false},
		{"", core.Color{}, true},
		{"#ff00", core.Color{}, true},
		{"#gg0000", core.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sf.Light.Position.Point() != core.NewPoint3D(2, 2, 5) {
		t.Errorf("Expected light at (2,2,5), got %v", sf.Light.Position)
	}

	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSceneFileSurfaceOrder(t *testing.T) {
	sf, err := ParseSceneFile([]byte(`{
  "boxes": [{"center": [6, 3, 0], "size": [1, 1, 1], "color": "#00f", "reflectivity": 0.5}],
  "planes": [{"point": [0, 0, -2], "normal": [0, 0, 1], "color": "#888", "reflectivity": 0.1}],
  "spheres": [{"center": [5, 0, 0], "radius": 2, "color": "#f00", "reflectivity": 1}]
}`))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	surfaces, err := sf.Surfaces()
	if err != nil {
		t.Fatalf("Surfaces failed: %v", err)
	}
	if len(surfaces) != 3 {
		t.Fatalf("Expected 3 surfaces, got %d", len(surfaces))
	}
	if _, ok := surfaces[0].(*geometry.Sphere); !ok {
		t.Errorf("Expected sphere first, got %T", surfaces[0])
	}
	if _, ok := surfaces[1].(*geometry.Plane); !ok {
		t.Errorf("Expected plane second, got %T", surfaces[1])
	}
	if box, ok := surfaces[2].(*geometry.Box); !ok || box.Color() != core.NewColor(0, 0, 255) {
		t.Errorf("Expected blue box third, got %T", surfaces[2])
	}
}
