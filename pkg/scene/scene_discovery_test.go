package scene

import (
	"os"
	"path/filepath"
	"testing"
)

const mirrorRowJSON = `{
  "description": "Two mirrors",
  "spheres": [
    {"center": [5, 0, 0], "radius": 1, "color": "#ff0000", "reflectivity": 0.5},
    {"center": [5, 3, 0], "radius": 1, "color": "#0000ff", "reflectivity": 0.5}
  ]
}`

// withScenesDir points scene discovery at a temporary directory
func withScenesDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	saved := ScenesDirs
	ScenesDirs = []string{dir}
	t.Cleanup(func() { ScenesDirs = saved })
	return dir
}

func TestCreate(t *testing.T) {
	dir := withScenesDir(t, map[string]string{
		"mirror-row.json": mirrorRowJSON,
		"broken.json":     `{"spheres": [`,
	})

	tests := []struct {
		name          string
		sceneName     string
		expectError   bool
		expectedCount int
	}{
		{"default builtin", "default", false, 6},
		{"single sphere builtin", "single-sphere", false, 1},
		{"sphere grid builtin", "sphere-grid", false, 26},
		{"json by name", "mirror-row", false, 2},
		{"json by path", filepath.Join(dir, "mirror-row.json"), false, 2},
		{"broken json", "broken", true, 0},
		{"unknown", "nonexistent", true, 0},
		{"missing path", filepath.Join(dir, "missing.json"), true, 0},
		{"empty name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.sceneName)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.sceneName)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneName, err)
			}
			if len(s.Surfaces) != tt.expectedCount {
				t.Errorf("Expected %d surfaces, got %d", tt.expectedCount, len(s.Surfaces))
			}
		})
	}
}

func TestCreateNamesJSONSceneAfterFile(t *testing.T) {
	withScenesDir(t, map[string]string{"mirror-row.json": mirrorRowJSON})

	s, err := Create("mirror-row")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name != "mirror-row" {
		t.Errorf("Expected scene name from file name, got %s", s.Name)
	}
}

func TestListScenes(t *testing.T) {
	withScenesDir(t, map[string]string{
		"mirror-row.json": mirrorRowJSON,
		"broken.json":     `not json`,
	})

	scenes, err := ListScenes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(scenes) != 4 {
		t.Fatalf("Expected 3 builtin + 1 json scene, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].ID != "default" || scenes[0].Type != "builtin" {
		t.Errorf("Expected default builtin first, got %+v", scenes[0])
	}

	last := scenes[3]
	if last.ID != "mirror-row" || last.Type != "json" {
		t.Errorf("Expected mirror-row json scene, got %+v", last)
	}
	if last.DisplayName != "Mirror Row" {
		t.Errorf("Expected display name 'Mirror Row', got %s", last.DisplayName)
	}
	if last.Description != "Two mirrors" {
		t.Errorf("Expected description from file, got %q", last.Description)
	}
}

func TestListScenesWithoutDirectory(t *testing.T) {
	saved := ScenesDirs
	ScenesDirs = []string{filepath.Join(t.TempDir(), "does-not-exist")}
	t.Cleanup(func() { ScenesDirs = saved })

	scenes, err := ListScenes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 3 {
		t.Errorf("Expected only builtin scenes, got %d", len(scenes))
	}
}
