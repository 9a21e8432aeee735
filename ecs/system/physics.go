package system

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spaceship/common"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/levels"
)

// Bit 31 is reserved for moving bodies; tile layers take the rest in order of
// first use.
const (
	dynamicCategory uint = 1 << 31
	maxLayerBits         = 31
)

// PhysicsSystem runs a zero-gravity Chipmunk space. Tile colliders become
// static boxes filtered by their layer's category bit; a moving body only
// collides with the layers registered for it through AddCollider.
type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	entities  map[ecs.Entity]*bodyInfo
	layerBits map[string]uint
	colliders map[ecs.Entity][]string
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	// offset from the transform point to the body center
	offsetX float64
	offsetY float64
	width   float64
	height  float64
	// velocity requested by the controller for the current step
	target cp.Vector
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		dt:        1.0 / common.TPS,
		entities:  make(map[ecs.Entity]*bodyInfo),
		layerBits: make(map[string]uint),
		colliders: make(map[ecs.Entity][]string),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// AddCollider registers that e is blocked by the static colliders of layer.
// It must be called before e's body is first synced.
func (ps *PhysicsSystem) AddCollider(e ecs.Entity, layer string) error {
	if _, err := ps.layerBit(layer); err != nil {
		return err
	}
	for _, l := range ps.colliders[e] {
		if l == layer {
			return nil
		}
	}
	ps.colliders[e] = append(ps.colliders[e], layer)
	if info := ps.entities[e]; info != nil && info.shape != nil {
		info.shape.SetFilter(ps.dynamicFilter(e))
	}
	return nil
}

func (ps *PhysicsSystem) layerBit(layer string) (uint, error) {
	if bit, ok := ps.layerBits[layer]; ok {
		return bit, nil
	}
	if len(ps.layerBits) >= maxLayerBits {
		return 0, fmt.Errorf("%w: physics: too many collision layers for %q", levels.ErrConfiguration, layer)
	}
	bit := uint(1) << uint(len(ps.layerBits))
	ps.layerBits[layer] = bit
	return bit, nil
}

func (ps *PhysicsSystem) dynamicFilter(e ecs.Entity) cp.ShapeFilter {
	var mask uint
	for _, layer := range ps.colliders[e] {
		mask |= ps.layerBits[layer]
	}
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: dynamicCategory, Mask: mask}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.applyVelocities(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	created := 0
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		var info *bodyInfo
		if bodyComp.Static {
			info = ps.createStatic(w, e, transform, bodyComp)
		} else {
			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			info = ps.createDynamic(e, transform, sprite, bodyComp)
		}
		if info == nil {
			continue
		}

		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		created++
	}

	if created > 0 {
		log.Printf("physics: added %d bodies (%d tracked)", created, len(ps.entities))
	}
}

// createStatic adds a box whose top-left is the transform point.
func (ps *PhysicsSystem) createStatic(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	if bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return nil
	}

	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES}
	if tc, ok := ecs.Get(w, e, component.TileColliderComponent.Kind()); ok {
		bit, err := ps.layerBit(tc.Layer)
		if err != nil {
			log.Printf("%v", err)
			return nil
		}
		filter.Categories = bit
	}

	left := transform.X + bodyComp.OffsetX
	top := transform.Y + bodyComp.OffsetY
	bb := cp.BB{L: left, B: top, R: left + bodyComp.Width, T: top + bodyComp.Height}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(filter)
	ps.space.AddShape(shape)

	return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true, width: bodyComp.Width, height: bodyComp.Height}
}

// createDynamic adds a non-rotating box. The hit-box is measured in sprite
// frame pixels from the sprite's top-left and scaled with the transform.
func (ps *PhysicsSystem) createDynamic(e ecs.Entity, transform *component.Transform, sprite *component.Sprite, bodyComp *component.PhysicsBody) *bodyInfo {
	if bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return nil
	}

	sx, sy := transform.Scale()
	originX, originY := 0.0, 0.0
	if sprite != nil {
		originX, originY = sprite.OriginX, sprite.OriginY
	}
	width := bodyComp.Width * sx
	height := bodyComp.Height * sy
	offsetX := (bodyComp.OffsetX-originX)*sx + width/2
	offsetY := (bodyComp.OffsetY-originY)*sy + height/2

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	info := &bodyInfo{offsetX: offsetX, offsetY: offsetY, width: width, height: height}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X + offsetX, Y: transform.Y + offsetY})
	// The requested velocity is applied before contacts are solved, so a body
	// pushed into a wall is stopped by it instead of sinking in.
	body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, _ float64, _ float64) {
		b.SetVelocityVector(info.target)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(ps.dynamicFilter(e))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

// applyVelocities hands each moving body the velocity its controller asked
// for this step.
func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	ecs.ForEach(w, component.VelocityComponent.Kind(), func(e ecs.Entity, vel *component.Velocity) {
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		info.target = cp.Vector{X: vel.X, Y: vel.Y}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X - info.offsetX
		transform.Y = pos.Y - info.offsetY
	}
}

// HitBox returns the world-space rectangle of e's shape.
func (ps *PhysicsSystem) HitBox(e ecs.Entity) (common.Rect, bool) {
	info := ps.entities[e]
	if info == nil || info.shape == nil {
		return common.Rect{}, false
	}
	if info.static {
		bb := info.shape.BB()
		return common.Rect{X: bb.L, Y: bb.B, Width: bb.R - bb.L, Height: bb.T - bb.B}, true
	}
	pos := info.body.Position()
	return common.Rect{X: pos.X - info.width/2, Y: pos.Y - info.height/2, Width: info.width, Height: info.height}, true
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.colliders, e)
	}
}
