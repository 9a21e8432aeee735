// Command spsa previews the walk clips of an entity prefab outside the scene.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/component"
	"github.com/milk9111/spaceship/ecs/entity"
	"github.com/milk9111/spaceship/ecs/system"
)

const previewSize = 256

type previewGame struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	entity    ecs.Entity
	clips     []string
	current   int
}

func newPreviewGame(prefab string) (*previewGame, error) {
	w := ecs.NewWorld()
	e, err := entity.BuildEntity(w, prefab)
	if err != nil {
		return nil, err
	}
	if err := entity.SetEntityTransform(w, e, previewSize/2, previewSize/2); err != nil {
		return nil, err
	}

	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || len(anim.Defs) == 0 {
		return nil, fmt.Errorf("spsa: prefab %q has no animation clips", prefab)
	}
	clips := make([]string, 0, len(anim.Defs))
	for name := range anim.Defs {
		clips = append(clips, name)
	}
	sort.Strings(clips)
	anim.Play(clips[0])

	scheduler := ecs.NewScheduler(system.NewAnimationSystem())
	scheduler.AddRender(system.NewRenderSystem())

	return &previewGame{world: w, scheduler: scheduler, entity: e, clips: clips}, nil
}

func (g *previewGame) Update() error {
	step := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		step = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		step = -1
	}
	anim, ok := ecs.Get(g.world, g.entity, component.AnimationComponent.Kind())
	if !ok {
		return nil
	}
	if step != 0 {
		g.current = (g.current + step + len(g.clips)) % len(g.clips)
		anim.Play(g.clips[g.current])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if anim.Playing {
			anim.Stop()
		} else {
			anim.Playing = true
		}
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x18, 0xff})
	g.scheduler.Draw(g.world, screen)
	if anim, ok := ecs.Get(g.world, g.entity, component.AnimationComponent.Kind()); ok {
		frame, _ := anim.SheetFrame()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s frame %d\n<- -> clip, space pause", anim.Current, frame))
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	prefab := flag.String("prefab", "player.yaml", "entity prefab with an animation component")
	flag.Parse()

	g, err := newPreviewGame(*prefab)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(previewSize*2, previewSize*2)
	ebiten.SetWindowTitle("Clip Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
