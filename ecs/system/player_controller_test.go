package system

import (
	"testing"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

func TestSteer(t *testing.T) {
	const speed = 175.0
	cases := []struct {
		name string
		in   component.Input
		vel  component.Velocity
		anim string
	}{
		{"left", component.Input{Left: true}, component.Velocity{X: -speed}, AnimLeft},
		{"right", component.Input{Right: true}, component.Velocity{X: speed}, AnimRight},
		{"up", component.Input{Up: true}, component.Velocity{Y: -speed}, AnimUp},
		{"down", component.Input{Down: true}, component.Velocity{Y: speed}, AnimDown},
		{"left_up", component.Input{Left: true, Up: true}, component.Velocity{X: -speed, Y: -speed}, AnimLeft},
		{"down_right", component.Input{Down: true, Right: true}, component.Velocity{X: speed, Y: speed}, AnimDown},
		{"right_up", component.Input{Right: true, Up: true}, component.Velocity{X: speed, Y: -speed}, AnimUp},
		{"left_and_right", component.Input{Left: true, Right: true}, component.Velocity{X: -speed}, AnimLeft},
		{"up_and_down", component.Input{Up: true, Down: true}, component.Velocity{Y: -speed}, AnimUp},
		{"all", component.Input{Left: true, Right: true, Up: true, Down: true}, component.Velocity{X: -speed, Y: -speed}, AnimLeft},
		{"none", component.Input{}, component.Velocity{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Steer(component.Velocity{X: 42, Y: -7}, c.in, speed)
			if got.Velocity != c.vel {
				t.Fatalf("velocity = %+v, want %+v", got.Velocity, c.vel)
			}
			if got.Anim != c.anim {
				t.Fatalf("anim = %q, want %q", got.Anim, c.anim)
			}
			if got.Stop != (c.anim == "") {
				t.Fatalf("stop = %v for anim %q", got.Stop, c.anim)
			}
		})
	}
}

func newControlledPlayer(t *testing.T, w *ecs.World) (ecs.Entity, *component.Input, *component.Animation) {
	t.Helper()
	e := ecs.CreateEntity(w)
	input := &component.Input{}
	anim := &component.Animation{
		FrameW:  127,
		FrameH:  191,
		Columns: 4,
		Defs: map[string]component.AnimationDef{
			AnimLeft:  {Name: AnimLeft, Frames: []int{4, 5, 6, 7}, FPS: 8, Loop: true},
			AnimDown:  {Name: AnimDown, Frames: []int{0, 1, 2, 3}, FPS: 8, Loop: true},
			AnimRight: {Name: AnimRight, Frames: []int{8, 9, 10, 11}, FPS: 8, Loop: true},
			AnimUp:    {Name: AnimUp, Frames: []int{12, 13, 14, 15}, FPS: 8, Loop: true},
		},
	}
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 175}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), input))
	mustAdd(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))
	return e, input, anim
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func TestPlayerControllerSystem(t *testing.T) {
	w := ecs.NewWorld()
	e, input, anim := newControlledPlayer(t, w)
	sys := NewPlayerControllerSystem()

	input.Left = true
	sys.Update(w)
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		t.Fatalf("controller should attach a velocity")
	}
	if *vel != (component.Velocity{X: -175}) {
		t.Fatalf("velocity = %+v", *vel)
	}
	if anim.Current != AnimLeft || !anim.Playing {
		t.Fatalf("expected LEFT playing, got %q playing=%v", anim.Current, anim.Playing)
	}

	// holding the same key keeps the clip running
	anim.Frame = 2
	sys.Update(w)
	if anim.Frame != 2 {
		t.Fatalf("held key restarted the clip, frame %d", anim.Frame)
	}

	*input = component.Input{}
	sys.Update(w)
	if *vel != (component.Velocity{}) {
		t.Fatalf("released keys should stop the body, got %+v", *vel)
	}
	if anim.Playing || anim.Current != AnimLeft || anim.Frame != 2 {
		t.Fatalf("stop should freeze LEFT on frame 2, got %q frame %d playing %v", anim.Current, anim.Frame, anim.Playing)
	}

	*input = component.Input{Right: true, Up: true}
	sys.Update(w)
	if anim.Current != AnimUp || anim.Frame != 0 {
		t.Fatalf("expected UP from frame 0, got %q frame %d", anim.Current, anim.Frame)
	}
	if *vel != (component.Velocity{X: 175, Y: -175}) {
		t.Fatalf("velocity = %+v", *vel)
	}
}
