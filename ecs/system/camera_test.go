package system

import (
	"image"
	"math"
	"testing"

	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

func TestFollowClamped(t *testing.T) {
	const (
		viewW  = 800.0
		viewH  = 600.0
		worldW = 1440.0
		worldH = 1200.0
	)
	cases := []struct {
		name   string
		tx, ty float64
		clamp  bool
		worldW float64
		worldH float64
		wantX  float64
		wantY  float64
	}{
		{"centered", 700, 600, true, worldW, worldH, 300, 300},
		{"top_left_corner", 50, 40, true, worldW, worldH, 0, 0},
		{"bottom_right_corner", 1430, 1190, true, worldW, worldH, 640, 600},
		{"unclamped", 50, 40, false, worldW, worldH, -350, -260},
		{"world_narrower_than_view", 100, 600, true, 480, worldH, -160, 300},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := FollowClamped(c.tx, c.ty, viewW, viewH, c.worldW, c.worldH, c.clamp)
			if x != c.wantX || y != c.wantY {
				t.Fatalf("FollowClamped = (%v, %v), want (%v, %v)", x, y, c.wantX, c.wantY)
			}
		})
	}
}

func TestCameraSystemFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()

	bounds := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1440, Height: 1200}))

	player := ecs.CreateEntity(w)
	playerT := &component.Transform{X: 500, Y: 500, ScaleX: 48.0 / 127.0, ScaleY: 72.0 / 191.0}
	mustAdd(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, player, component.TransformComponent.Kind(), playerT))
	mustAdd(t, ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{
		Source:    image.Rect(0, 0, 127, 191),
		UseSource: true,
		OriginX:   63.5,
		OriginY:   95.5,
	}))

	cam := ecs.CreateEntity(w)
	camT := &component.Transform{}
	mustAdd(t, ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	mustAdd(t, ecs.Add(w, cam, component.TransformComponent.Kind(), camT))
	mustAdd(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		TargetName:    "player",
		ClampToBounds: true,
		ViewWidth:     800,
		ViewHeight:    600,
	}))

	sys := NewCameraSystem()
	sys.Update(w)
	if !near(camT.X, 100) || !near(camT.Y, 200) {
		t.Fatalf("camera = (%v, %v), want (100, 200)", camT.X, camT.Y)
	}

	playerT.X, playerT.Y = 20, 1190
	sys.Update(w)
	if !near(camT.X, 0) || !near(camT.Y, 600) {
		t.Fatalf("camera should stay inside the world, got (%v, %v)", camT.X, camT.Y)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
