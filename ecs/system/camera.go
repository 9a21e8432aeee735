package system

import (
	"github.com/milk9111/spaceship/common"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update centers the camera view on its target and keeps the view inside the
// level bounds. The camera transform holds the view's top-left corner.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	targetX, targetY, ok := visualCenter(w, cs.targetEntity)
	if !ok {
		return
	}

	viewW, viewH := camComp.ViewWidth, camComp.ViewHeight
	if viewW <= 0 {
		viewW = common.BaseWidth
	}
	if viewH <= 0 {
		viewH = common.BaseHeight
	}

	worldW, worldH := 0.0, 0.0
	clamp := camComp.ClampToBounds
	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			worldW, worldH = bounds.Width, bounds.Height
		}
	} else {
		clamp = false
	}

	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform.X, camTransform.Y = FollowClamped(targetX, targetY, viewW, viewH, worldW, worldH, clamp)
}

// FollowClamped returns the view top-left that centers (targetX, targetY).
// With clamp set, the view never shows space outside [0, world]; a world
// smaller than the view is centered instead.
func FollowClamped(targetX, targetY, viewW, viewH, worldW, worldH float64, clamp bool) (float64, float64) {
	x := targetX - viewW/2
	y := targetY - viewH/2
	if !clamp {
		return x, y
	}
	return clampAxis(x, viewW, worldW), clampAxis(y, viewH, worldH)
}

func clampAxis(pos, view, world float64) float64 {
	if world < view {
		return (world - view) / 2
	}
	return common.Clamp(pos, 0, world-view)
}

// visualCenter returns the world-space center of an entity's drawn sprite,
// or its transform point when it has no sprite.
func visualCenter(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return t.X, t.Y, true
	}
	imgW, imgH := spriteSize(sprite)
	sx, sy := t.Scale()
	return t.X - sprite.OriginX*sx + imgW*sx/2, t.Y - sprite.OriginY*sy + imgH*sy/2, true
}

// spriteSize returns the unscaled size of the region a sprite draws.
func spriteSize(s *component.Sprite) (float64, float64) {
	if s.UseSource {
		return float64(s.Source.Dx()), float64(s.Source.Dy())
	}
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
