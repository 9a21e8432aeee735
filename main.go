package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders, hit-box and velocity")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	scenePath := flag.String("scene", "scene.yaml", "scene prefab in prefabs/")
	watch := flag.Bool("watch", false, "reload player tuning when prefabs/ changes")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("spaceship")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Config{ScenePath: *scenePath, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
