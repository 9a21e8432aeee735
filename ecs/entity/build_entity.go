package entity

import (
	"fmt"
	"image"
	"sort"

	"github.com/milk9111/spaceship/assets"
	"github.com/milk9111/spaceship/common"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/ecs/render"
	"github.com/milk9111/spaceship/levels"
	"github.com/milk9111/spaceship/prefabs"
)

// images is shared by every builder so a sheet used by several entities is
// uploaded once.
var images = render.NewCache(assets.LoadImage)

// imageSize reads an image's pixel size without uploading it.
var imageSize = assets.ImageSize

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"camera":       addCamera,
	"animation":    addAnimation,
	"physics_body": addPhysicsBody,
	"collider":     addCollider,
}

// sprite reads the transform and animation reads the sprite, so both come
// after what they depend on.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"animation",
	"physics_body",
	"collider",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: %w: load %q: %w", levels.ErrConfiguration, prefabPath, err)
	}
	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %w: prefab %q does not define components", levels.ErrConfiguration, prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %w: %q: no builder for components %v", levels.ErrConfiguration, prefabPath, names)
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player: %w", err)
	}
	if spec.MoveSpeed < 0 {
		return fmt.Errorf("%w: move_speed %v is negative", levels.ErrConfiguration, spec.MoveSpeed)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform: %w", err)
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// addSprite shows the first frame of a sheet. A display size rescales the
// entity's transform so the frame is drawn that large.
func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite: %w", err)
	}
	if spec.Image == "" {
		return fmt.Errorf("%w: sprite image is required", levels.ErrConfiguration)
	}

	img, err := images.Image(spec.Image)
	if err != nil {
		return fmt.Errorf("sprite image %q: %w", spec.Image, err)
	}
	sheetW, sheetH, err := imageSize(spec.Image)
	if err != nil {
		return fmt.Errorf("sprite image %q: %w", spec.Image, err)
	}

	frameW, frameH := sheetW, sheetH
	sprite := &component.Sprite{Image: img, OriginX: spec.OriginX, OriginY: spec.OriginY}
	if spec.FrameW > 0 && spec.FrameH > 0 {
		if spec.FrameW > sheetW || spec.FrameH > sheetH {
			return fmt.Errorf("%w: frame %dx%d larger than sheet %dx%d", levels.ErrConfiguration, spec.FrameW, spec.FrameH, sheetW, sheetH)
		}
		frameW, frameH = spec.FrameW, spec.FrameH
		sprite.Source = image.Rect(0, 0, frameW, frameH)
		sprite.UseSource = true
	}
	if spec.CenterOrigin {
		sprite.OriginX = float64(frameW) / 2
		sprite.OriginY = float64(frameH) / 2
	}

	if spec.DisplayWidth > 0 || spec.DisplayHeight > 0 {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return fmt.Errorf("%w: sprite display size needs a transform", levels.ErrConfiguration)
		}
		if spec.DisplayWidth > 0 {
			t.ScaleX = spec.DisplayWidth / float64(frameW)
		}
		if spec.DisplayHeight > 0 {
			t.ScaleY = spec.DisplayHeight / float64(frameH)
		}
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera: %w", err)
	}
	clamp := true
	if spec.ClampToBounds != nil {
		clamp = *spec.ClampToBounds
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName:    spec.TargetName,
		ClampToBounds: clamp,
		ViewWidth:     common.BaseWidth,
		ViewHeight:    common.BaseHeight,
	})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation: %w", err)
	}
	if spec.Sheet == "" || spec.FrameW <= 0 || spec.FrameH <= 0 {
		return fmt.Errorf("%w: animation needs a sheet and frame size", levels.ErrConfiguration)
	}

	sheet, err := images.Image(spec.Sheet)
	if err != nil {
		return fmt.Errorf("animation sheet %q: %w", spec.Sheet, err)
	}
	sheetW, sheetH, err := imageSize(spec.Sheet)
	if err != nil {
		return fmt.Errorf("animation sheet %q: %w", spec.Sheet, err)
	}
	columns := sheetW / spec.FrameW
	frameCount := columns * (sheetH / spec.FrameH)

	anim := &component.Animation{
		Sheet:   sheet,
		FrameW:  spec.FrameW,
		FrameH:  spec.FrameH,
		Columns: columns,
		Defs:    make(map[string]component.AnimationDef, len(spec.Defs)),
	}
	for name, def := range spec.Defs {
		if len(def.Frames) == 0 {
			return fmt.Errorf("%w: clip %q has no frames", levels.ErrConfiguration, name)
		}
		for _, f := range def.Frames {
			if f < 0 || f >= frameCount {
				return fmt.Errorf("%w: clip %q frame %d outside sheet of %d frames", levels.ErrConfiguration, name, f, frameCount)
			}
		}
		anim.Defs[name] = component.AnimationDef{
			Name:   name,
			Frames: append([]int(nil), def.Frames...),
			FPS:    def.FPS,
			Loop:   def.Loop,
		}
	}

	if spec.Current != "" {
		if _, ok := anim.Defs[spec.Current]; !ok {
			return fmt.Errorf("%w: current clip %q is not defined", levels.ErrConfiguration, spec.Current)
		}
		anim.Current = spec.Current
		if spec.Playing {
			anim.Play(spec.Current)
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("%w: physics body needs a positive size", levels.ErrConfiguration)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Mass:    spec.Mass,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider: %w", err)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Layers: append([]string(nil), spec.Layers...)})
}
