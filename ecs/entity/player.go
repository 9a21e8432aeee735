package entity

import (
	"fmt"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/prefabs"
)

func NewPlayer(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntity(w, prefabPath)
}

func NewPlayerAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// ApplyPlayerTuning copies move speed and clip rates from a player prefab
// onto a live player without touching its position or current clip.
func ApplyPlayerTuning(w *ecs.World, player ecs.Entity, prefabPath string) error {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("player: reload %q: %w", prefabPath, err)
	}

	if raw, ok := spec.Components["player"]; ok {
		ps, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
		if err != nil {
			return fmt.Errorf("player: decode player: %w", err)
		}
		if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok && ps.MoveSpeed >= 0 {
			p.MoveSpeed = ps.MoveSpeed
		}
	}

	if raw, ok := spec.Components["animation"]; ok {
		as, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
		if err != nil {
			return fmt.Errorf("player: decode animation: %w", err)
		}
		if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
			for name, def := range as.Defs {
				cur, ok := anim.Defs[name]
				if !ok {
					continue
				}
				cur.FPS = def.FPS
				cur.Loop = def.Loop
				anim.Defs[name] = cur
			}
		}
	}

	return nil
}
