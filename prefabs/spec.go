package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes how a tilemap becomes the playable world: which
// tileset image backs each Tiled tileset, which layers are instantiated in
// what paint order, and which prefabs provide the player and camera.
type SceneSpec struct {
	Name     string               `yaml:"name"`
	Map      string               `yaml:"map"`
	Tilesets []TilesetBindingSpec `yaml:"tilesets"`
	Layers   []LayerSpec          `yaml:"layers"`
	Player   string               `yaml:"player"`
	Camera   string               `yaml:"camera"`
}

// TilesetBindingSpec binds the tileset name authored in the tilemap to an
// image asset.
type TilesetBindingSpec struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type LayerSpec struct {
	Name    string `yaml:"name"`
	Tileset string `yaml:"tileset"`
	// CollideByProperty names a boolean tile property; tiles with it set
	// become static colliders. Empty means the layer is decorative.
	CollideByProperty string `yaml:"collide_by_property"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Map == "" {
		return nil, fmt.Errorf("prefabs: %s: map is required", filename)
	}
	if len(spec.Layers) == 0 {
		return nil, fmt.Errorf("prefabs: %s: at least one layer is required", filename)
	}
	return &spec, nil
}

// TilesetImage returns the image bound to a tileset name.
func (s *SceneSpec) TilesetImage(name string) (string, bool) {
	for _, ts := range s.Tilesets {
		if ts.Name == name {
			return ts.Image, true
		}
	}
	return "", false
}
