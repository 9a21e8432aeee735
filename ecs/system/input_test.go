package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
)

func TestInputSystemReadsArrowKeys(t *testing.T) {
	held := map[ebiten.Key]bool{}
	sys := NewInputSystemWith(func(k ebiten.Key) bool { return held[k] })

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	input := &component.Input{}
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), input))

	cases := []struct {
		name string
		keys []ebiten.Key
		want component.Input
	}{
		{"none", nil, component.Input{}},
		{"left", []ebiten.Key{ebiten.KeyArrowLeft}, component.Input{Left: true}},
		{"up_right", []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowRight}, component.Input{Up: true, Right: true}},
		{"letters_ignored", []ebiten.Key{ebiten.KeyA, ebiten.KeyW}, component.Input{}},
		{"down", []ebiten.Key{ebiten.KeyArrowDown}, component.Input{Down: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			held = map[ebiten.Key]bool{}
			for _, k := range c.keys {
				held[k] = true
			}
			sys.Update(w)
			if *input != c.want {
				t.Fatalf("input = %+v, want %+v", *input, c.want)
			}
		})
	}
}
