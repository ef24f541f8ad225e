package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name accepted by Create
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (json type only)
}

var builtInScenes = []SceneInfo{
	{
		ID:          "random",
		DisplayName: "Random Spheres",
		Description: "Ground sphere, a grid of small random spheres and three large feature spheres",
		Type:        "builtin",
	},
	{
		ID:          "simple",
		DisplayName: "Simple",
		Description: "Single diffuse sphere on a ground sphere, pinhole camera",
		Type:        "builtin",
	},
	{
		ID:          "materials",
		DisplayName: "Materials",
		Description: "Glass, diffuse and fuzzed metal spheres through a thin lens",
		Type:        "builtin",
	},
	{
		ID:          "sphere-grid",
		DisplayName: "Sphere Grid",
		Description: "10x10 grid of rainbow-colored metallic spheres",
		Type:        "builtin",
	},
}

// ListScenes returns the built-in scenes
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	return scenes
}

// ListJSONScenes scans dir for *.json scene files. A missing directory yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(name),
			Type:        "json",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(ListScenes(), jsonScenes...), nil
}

// Create builds a scene by name. Names ending in .json are loaded from disk. A zero width
// or aspect ratio selects the default.
func Create(name string, seed int64, width int, aspectRatio float64) (*Scene, error) {
	switch name {
	case "random", "":
		return NewRandomScene(seed, width, aspectRatio)
	case "simple":
		return NewSimpleScene(width, aspectRatio)
	case "materials":
		return NewMaterialsScene(width, aspectRatio)
	case "sphere-grid":
		return NewSphereGridScene(width, aspectRatio)
	}
	if strings.HasSuffix(name, ".json") {
		return LoadJSON(name, width, aspectRatio)
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// titleCase converts a filename-style string to title case
// e.g., "cover-scene" -> "Cover Scene"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
