// Command replay runs a tengo input script against a level without opening a
// window and prints the character state as it goes.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/milk9111/plumber/app"
	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/levels"
	"github.com/milk9111/plumber/obj"
	"github.com/milk9111/plumber/prefabs"
	"github.com/milk9111/plumber/script"
)

type nullTarget struct{}

func (nullTarget) AddChild(obj.Drawable)    {}
func (nullTarget) RemoveChild(obj.Drawable) {}
func (nullTarget) Update(common.Vec2)       {}

func main() {
	levelName := flag.String("level", "level1.json", "level file (disk path or embedded name)")
	scriptPath := flag.String("script", "demo.tengo", "tengo input script")
	frames := flag.Int("frames", 600, "frames to simulate")
	every := flag.Int("every", 30, "print state every n frames")
	dt := flag.Float64("dt", 1.0/60.0, "frame delta in seconds")
	flag.Parse()

	src, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	level := obj.NewLevel(src)

	cfg, spec, err := prefabs.LoadCharacterConfig("", level.Spawn)
	if err != nil {
		log.Fatal(err)
	}

	code, err := prefabs.LoadScript(*scriptPath)
	if err != nil {
		log.Fatal(err)
	}
	in, err := script.New(*scriptPath, code)
	if err != nil {
		log.Fatal(err)
	}

	character := obj.NewCharacter(cfg, in)
	world := obj.NewCollisionWorld(level)
	a, err := app.New(app.Deps{
		Character:           character,
		Input:               in,
		World:               world,
		Objects:             obj.NewObjectManager(world),
		Render:              nullTarget{},
		HurtInvulnerability: spec.HurtInvulnerability,
	})
	if err != nil {
		log.Fatal(err)
	}

	for i := 1; i <= *frames && a.State() != app.StateEnd; i++ {
		if err := in.Poll(i, *dt); err != nil {
			log.Fatal(err)
		}
		a.Update(*dt)
		for _, evt := range character.DrainEvents() {
			fmt.Printf("%5d  event %s (%s)\n", i, evt.Kind, evt.Mode)
		}
		if *every > 0 && i%*every == 0 {
			p, v := character.Position(), character.Velocity()
			fmt.Printf("%5d  %-5s hp=%d pos=(%.1f,%.1f) vel=(%.1f,%.1f) grounded=%v contact=%s\n",
				i, character.Mode(), character.Health(), p.X, p.Y, v.X, v.Y,
				character.IsGrounded(), character.Box().State)
		}
	}
}
