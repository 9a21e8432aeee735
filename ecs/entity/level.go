package entity

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/levels"
	"github.com/milk9111/spaceship/prefabs"
)

// resolvedLayer is a scene layer matched against the tilemap.
type resolvedLayer struct {
	spec    prefabs.LayerSpec
	layer   *levels.Layer
	tileset *levels.Tileset
	image   *ebiten.Image
}

// LoadLevelToWorld creates the level bounds, one entity per painted tile in
// scene layer order, and merged static colliders for layers that collide by
// a tile property. Every layer is checked against the map before any entity
// is created.
func LoadLevelToWorld(world *ecs.World, scene *prefabs.SceneSpec, m *levels.Map) error {
	if world == nil || scene == nil || m == nil {
		return fmt.Errorf("level: world, scene and map are required")
	}

	layers, err := resolveLayers(scene, m)
	if err != nil {
		return err
	}

	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(m.WidthInPixels()),
		Height: float64(m.HeightInPixels()),
	}); err != nil {
		return err
	}

	for layerIdx, rl := range layers {
		tiles, collides, err := addLayerTiles(world, m, rl, layerIdx)
		if err != nil {
			return err
		}
		colliders := 0
		if rl.spec.CollideByProperty != "" {
			colliders, err = addMergedTileColliders(world, rl.spec.Name, collides, m.Width, m.Height, float64(m.TileWidth), float64(m.TileHeight))
			if err != nil {
				return err
			}
		}
		log.Printf("level: layer %q: %d tiles, %d colliders", rl.spec.Name, tiles, colliders)
	}

	return nil
}

func resolveLayers(scene *prefabs.SceneSpec, m *levels.Map) ([]resolvedLayer, error) {
	out := make([]resolvedLayer, 0, len(scene.Layers))
	for _, ls := range scene.Layers {
		layer, err := m.Layer(ls.Name)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		ts, err := m.Tileset(ls.Tileset)
		if err != nil {
			return nil, fmt.Errorf("level: layer %q: %w", ls.Name, err)
		}
		if ls.CollideByProperty != "" && !ts.HasProperty(ls.CollideByProperty) {
			return nil, fmt.Errorf("level: %w: tileset %q has no tile property %q for layer %q", levels.ErrConfiguration, ts.Name, ls.CollideByProperty, ls.Name)
		}
		path, ok := scene.TilesetImage(ts.Name)
		if !ok {
			return nil, fmt.Errorf("level: %w: no image bound to tileset %q", levels.ErrConfiguration, ts.Name)
		}
		img, err := images.Image(path)
		if err != nil {
			return nil, fmt.Errorf("level: tileset %q image: %w", ts.Name, err)
		}
		out = append(out, resolvedLayer{spec: ls, layer: layer, tileset: ts, image: img})
	}
	return out, nil
}

// addLayerTiles creates the tile entities of one layer. Cells painted from a
// tileset other than the layer's are skipped. The returned grid marks the
// cells whose tile has the collision property set.
func addLayerTiles(world *ecs.World, m *levels.Map, rl resolvedLayer, layerIdx int) (int, []bool, error) {
	prop := rl.spec.CollideByProperty
	collides := make([]bool, m.Width*m.Height)
	count := 0

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			gid := rl.layer.At(m, x, y)
			if gid == 0 || !rl.tileset.Contains(gid) {
				continue
			}
			src, ok := rl.tileset.TileRect(gid)
			if !ok {
				continue
			}

			solid := prop != "" && rl.tileset.BoolProperty(rl.tileset.LocalID(gid), prop)
			collides[y*m.Width+x] = solid

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x * m.TileWidth),
				Y:      float64(y * m.TileHeight),
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return count, nil, err
			}
			if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{
				Image:     rl.image,
				Source:    src,
				UseSource: true,
			}); err != nil {
				return count, nil, err
			}
			if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerIdx}); err != nil {
				return count, nil, err
			}
			if err := ecs.Add(world, e, component.StaticTileComponent.Kind(), &component.StaticTile{Layer: rl.spec.Name, Collides: solid}); err != nil {
				return count, nil, err
			}
			count++
		}
	}
	return count, collides, nil
}

// addMergedTileColliders covers the marked cells with as few static boxes as
// a greedy row-then-column sweep finds.
func addMergedTileColliders(world *ecs.World, layerName string, solid []bool, width, height int, tileW, tileH float64) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	open := func(x, y int) bool {
		i := index(x, y)
		return i < len(solid) && solid[i] && !visited[i]
	}

	count := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && open(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !open(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * tileW,
				Y:      float64(y) * tileH,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return count, err
			}
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  float64(maxW) * tileW,
				Height: float64(maxH) * tileH,
				Static: true,
			}); err != nil {
				return count, err
			}
			if err := ecs.Add(world, e, component.TileColliderComponent.Kind(), &component.TileCollider{Layer: layerName}); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
