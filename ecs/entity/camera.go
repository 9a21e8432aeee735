package entity

import (
	"fmt"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

func NewCamera(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	camera, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, camera, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefabPath)
	}
	if !ecs.Has(w, camera, component.TransformComponent.Kind()) {
		if err := SetEntityTransform(w, camera, 0, 0); err != nil {
			return 0, fmt.Errorf("camera: add transform: %w", err)
		}
	}
	return camera, nil
}
