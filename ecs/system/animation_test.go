package system

import (
	"image"
	"testing"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

func TestAnimationSystemAdvancesAtClipRate(t *testing.T) {
	w := ecs.NewWorld()
	e, _, anim := newControlledPlayer(t, w)
	sprite := &component.Sprite{}
	mustAdd(t, ecs.Add(w, e, component.SpriteComponent.Kind(), sprite))

	anim.Play(AnimLeft)
	sys := NewAnimationSystem()

	cases := []struct {
		ticks int
		frame int
		sheet int
	}{
		{1, 0, 4},
		{7, 1, 5},  // 8 ticks at 60 TPS > 1/8 s
		{8, 2, 6},  // 16 ticks
		{15, 0, 4}, // 31 ticks wraps past the fourth frame
	}
	for _, c := range cases {
		for i := 0; i < c.ticks; i++ {
			sys.Update(w)
		}
		if anim.Frame != c.frame {
			t.Fatalf("frame = %d, want %d", anim.Frame, c.frame)
		}
		want := anim.FrameRect(c.sheet)
		if !sprite.UseSource || sprite.Source != want {
			t.Fatalf("sprite source = %v, want %v", sprite.Source, want)
		}
	}
}

func TestAnimationSystemStoppedClipHoldsFrame(t *testing.T) {
	w := ecs.NewWorld()
	e, _, anim := newControlledPlayer(t, w)
	sprite := &component.Sprite{}
	mustAdd(t, ecs.Add(w, e, component.SpriteComponent.Kind(), sprite))

	anim.Play(AnimUp)
	anim.Frame = 3
	anim.Stop()

	sys := NewAnimationSystem()
	for i := 0; i < 30; i++ {
		sys.Update(w)
	}
	if anim.Frame != 3 {
		t.Fatalf("stopped clip advanced to %d", anim.Frame)
	}
	if sprite.Source != image.Rect(381, 573, 508, 764) {
		t.Fatalf("sprite source = %v", sprite.Source)
	}
}

func TestAnimationSystemNonLoopingClipEnds(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.Animation{
		FrameW:  10,
		FrameH:  10,
		Columns: 2,
		Defs:    map[string]component.AnimationDef{"once": {Name: "once", Frames: []int{0, 1}, FPS: 60}},
	}
	mustAdd(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))
	mustAdd(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))
	anim.Play("once")

	sys := NewAnimationSystem()
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	if anim.Playing || anim.Frame != 1 {
		t.Fatalf("expected clip to stop on its last frame, got frame %d playing %v", anim.Frame, anim.Playing)
	}
}
