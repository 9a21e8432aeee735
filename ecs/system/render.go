package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw paints sprites in ascending render layer, entity order breaking ties,
// offset by the camera view.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY := r.cameraOffset(w)

	for _, e := range drawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		sx, sy := t.Scale()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X-camX, t.Y-camY)
		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) cameraOffset(w *ecs.World) (float64, float64) {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return 0, 0
		}
		r.camEntity = camEntity
	}
	camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return camTransform.X, camTransform.Y
}

// drawOrder returns the drawable entities sorted by render layer.
func drawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layerOf := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layerOf[e] = layer.Index
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf[entities[i]], layerOf[entities[j]]
		if li != lj {
			return li < lj
		}
		return uint32(entities[i]) < uint32(entities[j])
	})
	return entities
}
