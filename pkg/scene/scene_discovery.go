package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-marcher/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

// ScenesDirs are the directories searched for JSON scene files
var ScenesDirs = []string{"scenes", "../scenes"}

var builtInScenes = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
	"sphere-grid":   NewSphereGridScene,
}

// Create resolves a scene by built-in name, JSON scene name, or JSON file path
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("empty scene name")
	}
	if build, ok := builtInScenes[name]; ok {
		return build(), nil
	}

	path := name
	if filepath.Ext(path) != ".json" {
		path = findSceneFile(name)
		if path == "" {
			return nil, fmt.Errorf("unknown scene: %s", name)
		}
	}

	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	s, err := NewFromFile(sf)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	if sf.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return s, nil
}

// findSceneFile looks for <name>.json in the scenes directories
func findSceneFile(name string) string {
	for _, dir := range ScenesDirs {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ListScenes returns the built-in scenes followed by the JSON scenes on disk
func ListScenes() ([]SceneInfo, error) {
	scenes := []SceneInfo{
		{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Six spheres of varying reflectivity",
			Type:        "builtin",
		},
		{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "One red mirror sphere straight ahead",
			Type:        "builtin",
		},
		{
			ID:          "sphere-grid",
			DisplayName: "Sphere Grid",
			Description: "A 5x5 grid of colored spheres on a ground plane",
			Type:        "builtin",
		},
	}

	jsonScenes, err := listJSONScenes()
	if err != nil {
		return nil, err
	}
	return append(scenes, jsonScenes...), nil
}

func listJSONScenes() ([]SceneInfo, error) {
	var scenesDir string
	for _, dir := range ScenesDirs {
		if _, err := os.Stat(dir); err == nil {
			scenesDir = dir
			break
		}
	}
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), ".json")
		info := SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Type:        "json",
			FilePath:    path,
		}
		if sf, err := loaders.LoadSceneFile(path); err == nil {
			info.Description = sf.Description
		} else {
			fmt.Printf("Warning: failed to read scene %s: %v\n", path, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-row" -> "Mirror Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
