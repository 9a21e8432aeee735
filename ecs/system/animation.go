package system

import (
	"github.com/milk9111/spaceship/common"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{dt: 1.0 / common.TPS}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || len(def.Frames) == 0 {
			return
		}

		if anim.Playing && def.FPS > 0 {
			step := 1.0 / def.FPS
			anim.Elapsed += a.dt
			for anim.Elapsed >= step {
				anim.Elapsed -= step
				anim.Frame++
				if anim.Frame < len(def.Frames) {
					continue
				}
				if def.Loop {
					anim.Frame = 0
					continue
				}
				anim.Frame = len(def.Frames) - 1
				anim.Playing = false
				anim.Elapsed = 0
				break
			}
		}

		frame, ok := anim.SheetFrame()
		if !ok {
			return
		}
		if anim.Sheet != nil {
			sprite.Image = anim.Sheet
		}
		sprite.Source = anim.FrameRect(frame)
		sprite.UseSource = true
	})
}
