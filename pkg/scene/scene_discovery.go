package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Create for unregistered names
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Seeded      bool   `json:"seeded"`      // Layout depends on the seed
}

type builder struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtInScenes = []builder{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Diffuse, hollow glass and metal spheres over a ground sphere",
		},
		build: func(int64) *Scene { return NewDefaultScene() },
	},
	{
		info: SceneInfo{
			ID:          "simple",
			DisplayName: "Simple Sphere",
			Description: "A single diffuse sphere against the sky",
		},
		build: func(int64) *Scene { return NewSimpleSphereScene() },
	},
	{
		info: SceneInfo{
			ID:          "sphere-grid",
			DisplayName: "Sphere Grid",
			Description: "Hundreds of random small spheres around three large ones",
			Seeded:      true,
		},
		build: func(seed int64) *Scene { return NewSphereGridScene(seed) },
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, b := range builtInScenes {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the named scene. Seed only affects seeded scenes.
func Create(name string, seed int64) (*Scene, error) {
	for _, b := range builtInScenes {
		if b.info.ID == name {
			return b.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
