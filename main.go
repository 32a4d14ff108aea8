package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/plumber/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw collision boxes and frame stats")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level1.json", "level file (disk path or embedded name)")
	mode := flag.String("mode", "", "starting tier: small, big or fire (default from prefabs/character.yaml)")
	resources := flag.String("resources", "Resources", "directory holding Sprites/")
	scriptPath := flag.String("script", "", "drive the character from a tengo script instead of the keyboard")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("plumber")
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(Options{
		Level:       *levelName,
		Mode:        *mode,
		Debug:       *debug,
		ResourceDir: *resources,
		Script:      *scriptPath,
		Watch:       *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
