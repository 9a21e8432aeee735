package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Dynamic bodies measure Width/Height/Offset in sprite frame pixels, relative
// to the sprite's top-left, and are scaled by the transform. Static bodies
// measure them in world units from the transform.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	Mass    float64
	Static  bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity is the instantaneous velocity requested for a body this step, in
// world units per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
