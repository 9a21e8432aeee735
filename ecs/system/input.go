package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

// KeyState reports whether a key is held. Tests replace it to script input.
type KeyState func(ebiten.Key) bool

type InputSystem struct {
	pressed KeyState
}

func NewInputSystem() *InputSystem {
	return &InputSystem{pressed: ebiten.IsKeyPressed}
}

// NewInputSystemWith polls keys through the given function instead of the
// window.
func NewInputSystemWith(pressed KeyState) *InputSystem {
	return &InputSystem{pressed: pressed}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.pressed == nil {
		return
	}

	state := component.Input{
		Up:    i.pressed(ebiten.KeyArrowUp),
		Down:  i.pressed(ebiten.KeyArrowDown),
		Left:  i.pressed(ebiten.KeyArrowLeft),
		Right: i.pressed(ebiten.KeyArrowRight),
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}
