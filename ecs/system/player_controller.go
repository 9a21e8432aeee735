package system

import (
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

// Clip names of the walk cycle.
const (
	AnimLeft  = "LEFT"
	AnimRight = "RIGHT"
	AnimUp    = "UP"
	AnimDown  = "DOWN"
)

// Steering is the outcome of one controller step.
type Steering struct {
	Velocity component.Velocity
	// Anim is the clip to play. It is empty when Stop is set.
	Anim string
	Stop bool
}

// Steer maps held keys to a velocity and clip. The previous velocity is
// discarded so the body halts the moment keys are released. Horizontal
// movement favors left over right and vertical favors up over down; diagonal
// movement is not normalized. The clip favors left, then up, then down, then
// right.
func Steer(_ component.Velocity, in component.Input, speed float64) Steering {
	var out Steering

	switch {
	case in.Left:
		out.Velocity.X = -speed
	case in.Right:
		out.Velocity.X = speed
	}

	switch {
	case in.Up:
		out.Velocity.Y = -speed
	case in.Down:
		out.Velocity.Y = speed
	}

	switch {
	case in.Left:
		out.Anim = AnimLeft
	case in.Up:
		out.Anim = AnimUp
	case in.Down:
		out.Anim = AnimDown
	case in.Right:
		out.Anim = AnimRight
	default:
		out.Stop = true
	}

	return out
}

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}

		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			vel = &component.Velocity{}
			if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
				panic("player controller: add velocity: " + err.Error())
			}
		}

		steer := Steer(*vel, *input, player.MoveSpeed)
		*vel = steer.Velocity

		anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !ok {
			continue
		}
		if steer.Stop {
			anim.Stop()
			continue
		}
		anim.Play(steer.Anim)
	}
}
