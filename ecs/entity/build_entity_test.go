package entity

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/milk9111/spaceship/assets"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/levels"
	"github.com/milk9111/spaceship/prefabs"
)

func TestNewPlayerFromPrefab(t *testing.T) {
	stubImages(t)
	w := ecs.NewWorld()
	player, err := NewPlayer(w, "player.yaml")
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) || !ecs.Has(w, player, component.InputComponent.Kind()) {
		t.Fatalf("player is missing its tag or input")
	}

	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if p.MoveSpeed != 175 {
		t.Fatalf("move speed = %v, want 175", p.MoveSpeed)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X != 500 || tr.Y != 500 {
		t.Fatalf("start = (%v, %v), want (500, 500)", tr.X, tr.Y)
	}
	if !near(tr.ScaleX*127, 48) || !near(tr.ScaleY*191, 72) {
		t.Fatalf("display size = %vx%v, want 48x72", tr.ScaleX*127, tr.ScaleY*191)
	}

	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !sprite.UseSource || sprite.Source != image.Rect(0, 0, 127, 191) {
		t.Fatalf("sprite source = %v", sprite.Source)
	}
	if sprite.OriginX != 63.5 || sprite.OriginY != 95.5 {
		t.Fatalf("origin = (%v, %v)", sprite.OriginX, sprite.OriginY)
	}

	anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
	if anim.Columns != 4 || anim.FrameW != 127 || anim.FrameH != 191 {
		t.Fatalf("animation grid = %d columns of %dx%d", anim.Columns, anim.FrameW, anim.FrameH)
	}
	clips := map[string][]int{
		"LEFT":  {4, 5, 6, 7},
		"DOWN":  {0, 1, 2, 3},
		"RIGHT": {8, 9, 10, 11},
		"UP":    {12, 13, 14, 15},
	}
	for name, frames := range clips {
		def, ok := anim.Defs[name]
		if !ok || def.FPS != 8 || !def.Loop || len(def.Frames) != len(frames) {
			t.Fatalf("clip %s = %+v", name, def)
		}
		for i := range frames {
			if def.Frames[i] != frames[i] {
				t.Fatalf("clip %s frames = %v, want %v", name, def.Frames, frames)
			}
		}
	}
	if anim.Playing {
		t.Fatalf("player should start idle")
	}

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Width != 100 || body.Height != 100 || body.OffsetX != 10 || body.OffsetY != 70 || body.Static {
		t.Fatalf("physics body = %+v", *body)
	}

	col, _ := ecs.Get(w, player, component.ColliderComponent.Kind())
	if len(col.Layers) != 2 || col.Layers[0] != "Base Layer" || col.Layers[1] != "Interactive Objects" {
		t.Fatalf("collider layers = %v", col.Layers)
	}

	layer, _ := ecs.Get(w, player, component.RenderLayerComponent.Kind())
	if layer.Index <= 3 {
		t.Fatalf("player must draw above the tile layers, got %d", layer.Index)
	}
}

func TestNewCameraFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w, "camera.yaml")
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if c.TargetName != "player" || !c.ClampToBounds || c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		t.Fatalf("camera = %+v", *c)
	}
	if !ecs.Has(w, cam, component.TransformComponent.Kind()) {
		t.Fatalf("camera needs a transform")
	}
}

func TestBuildEntityErrors(t *testing.T) {
	stubImages(t)

	cases := []struct {
		name       string
		components map[string]any
		want       error
	}{
		{"empty", nil, levels.ErrConfiguration},
		{"unknown_component", map[string]any{"player_tag": map[string]any{}, "jetpack": map[string]any{}}, levels.ErrConfiguration},
		{"missing_image", map[string]any{"sprite": map[string]any{"image": "gone.png"}}, assets.ErrAssetLoad},
		{"frame_outside_sheet", map[string]any{"animation": map[string]any{
			"sheet": "astronaut_spritesheet.png", "frame_w": 127, "frame_h": 191,
			"defs": map[string]any{"LEFT": map[string]any{"frames": []int{4, 16}, "fps": 8}},
		}}, levels.ErrConfiguration},
		{"unknown_current_clip", map[string]any{"animation": map[string]any{
			"sheet": "astronaut_spritesheet.png", "frame_w": 127, "frame_h": 191, "current": "JUMP",
		}}, levels.ErrConfiguration},
		{"empty_body", map[string]any{"physics_body": map[string]any{"width": 0}}, levels.ErrConfiguration},
		{"display_without_transform", map[string]any{"sprite": map[string]any{
			"image": "astronaut_spritesheet.png", "display_width": 48,
		}}, levels.ErrConfiguration},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, prefabs.EntityBuildSpec{Name: c.name, Components: c.components}, c.name+".yaml")
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if w.Len() != 0 {
				t.Fatalf("failed build left %d entities", w.Len())
			}
		})
	}
}

func TestBuildEntityMissingPrefab(t *testing.T) {
	if _, err := BuildEntity(ecs.NewWorld(), "ghost.yaml"); !errors.Is(err, levels.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
