package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/levels"
	"github.com/milk9111/spaceship/prefabs"
)

// ColliderRegistry records that an entity is blocked by the tile colliders
// of a layer.
type ColliderRegistry interface {
	AddCollider(e ecs.Entity, layer string) error
}

// Scene is a fully loaded playable world.
type Scene struct {
	World  *ecs.World
	Spec   *prefabs.SceneSpec
	Map    *levels.Map
	Player ecs.Entity
	Camera ecs.Entity
	Bounds component.LevelBounds
}

// NewScene loads a scene prefab, its tilemap and its player and camera, then
// registers the player's collider layers with colliders. Any failure aborts
// the whole scene.
func NewScene(specPath string, colliders ColliderRegistry) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(specPath)
	if err != nil {
		return nil, fmt.Errorf("scene: %w: %w", levels.ErrConfiguration, err)
	}

	m, err := levels.LoadMap(spec.Map)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	log.Printf("scene: %s: map %dx%d tiles of %dx%d", spec.Name, m.Width, m.Height, m.TileWidth, m.TileHeight)

	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, spec, m); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	if spec.Player == "" {
		return nil, fmt.Errorf("scene: %w: %s names no player prefab", levels.ErrConfiguration, specPath)
	}
	player, err := NewPlayer(w, spec.Player)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	camera := ecs.Entity(0)
	if spec.Camera != "" {
		camera, err = NewCamera(w, spec.Camera)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	if err := registerColliders(w, spec, player, colliders); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		World:  w,
		Spec:   spec,
		Map:    m,
		Player: player,
		Camera: camera,
		Bounds: component.LevelBounds{Width: float64(m.WidthInPixels()), Height: float64(m.HeightInPixels())},
	}
	log.Printf("scene: %s: %d entities", spec.Name, w.Len())
	return s, nil
}

// registerColliders checks every layer the entity's collider names against
// the scene before handing it to the registry.
func registerColliders(w *ecs.World, spec *prefabs.SceneSpec, e ecs.Entity, colliders ColliderRegistry) error {
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return nil
	}
	for _, layer := range col.Layers {
		if !sceneHasLayer(spec, layer) {
			return fmt.Errorf("%w: collider layer %q is not part of scene %q", levels.ErrConfiguration, layer, spec.Name)
		}
	}
	if colliders == nil {
		return nil
	}
	for _, layer := range col.Layers {
		if err := colliders.AddCollider(e, layer); err != nil {
			return fmt.Errorf("register collider %q: %w", layer, err)
		}
	}
	return nil
}

func sceneHasLayer(spec *prefabs.SceneSpec, name string) bool {
	for _, ls := range spec.Layers {
		if ls.Name == name {
			return true
		}
	}
	return false
}

// ReloadPlayerTuning re-reads the scene's player prefab onto the live player.
func (s *Scene) ReloadPlayerTuning() error {
	if s == nil || s.Spec == nil {
		return nil
	}
	return ApplyPlayerTuning(s.World, s.Player, s.Spec.Player)
}
