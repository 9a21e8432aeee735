package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spaceship/common"
	"github.com/milk9111/spaceship/ecs"
	"github.com/milk9111/spaceship/ecs/entity"
	"github.com/milk9111/spaceship/ecs/system"
	"github.com/milk9111/spaceship/prefabs"
)

type Config struct {
	ScenePath string
	Debug     bool
	Watch     bool
}

type Game struct {
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem

	debug  bool
	paused bool
	quit   bool

	ui      *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	physics := system.NewPhysicsSystem()

	scene, err := entity.NewScene(cfg.ScenePath, physics)
	if err != nil {
		return nil, err
	}

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		physics,
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
	)
	scheduler.AddRender(system.NewRenderSystem())
	if cfg.Debug {
		scheduler.AddRender(system.NewPhysicsDebugSystem(physics))
	}

	g := &Game{
		scene:     scene,
		scheduler: scheduler,
		physics:   physics,
		debug:     cfg.Debug,
	}
	g.ui = NewPauseUI(g)

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("game: prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	g.reloadPrefabs()

	if g.paused {
		g.ui.Update()
		return nil
	}

	g.scheduler.Update(g.scene.World)
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	player := filepath.Base(g.scene.Spec.Player)
	for _, name := range g.watcher.Poll() {
		if name != player {
			continue
		}
		if err := g.scene.ReloadPlayerTuning(); err != nil {
			log.Printf("game: reload %s: %v", name, err)
			continue
		}
		log.Printf("game: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.scheduler.Draw(g.scene.World, screen)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic(fmt.Sprintf("shouldn't use Layout (%dx%d)", outsideWidth, outsideHeight))
}
