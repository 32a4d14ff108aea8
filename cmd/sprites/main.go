package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/plumber/assets"
	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/obj"
	"github.com/milk9111/plumber/prefabs"
	"github.com/milk9111/plumber/render"
)

const previewSize = 512

// previewGame cycles through every tier and clip of the sprite table.
type previewGame struct {
	table    obj.SpriteTable
	images   *render.ImageCache
	anim     *obj.AnimationObject
	modes    []obj.Mode
	slots    []obj.AnimSlot
	modeIdx  int
	slotIdx  int
	interval int
}

func newPreview(table obj.SpriteTable, intervalMs int) *previewGame {
	g := &previewGame{
		table:    table,
		images:   render.NewImageCache(assets.LoadImage),
		modes:    obj.Modes(),
		slots:    obj.CharacterSlots(),
		interval: intervalMs,
	}
	g.load()
	return g
}

func (g *previewGame) load() {
	set := g.table[g.modes[g.modeIdx]]
	g.anim = obj.NewAnimationObject(set.Default, common.Vec2{}, 0)
	slot := g.slots[g.slotIdx]
	g.anim.AddAnimation(slot, set.Clips[slot])
	g.anim.SetAnimation(slot, g.interval)
	g.anim.SetLooping(true)
	g.anim.PlayAnimation()
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.slotIdx = (g.slotIdx + 1) % len(g.slots)
		g.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.slotIdx = (g.slotIdx + len(g.slots) - 1) % len(g.slots)
		g.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.modeIdx = (g.modeIdx + 1) % len(g.modes)
		g.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	g.anim.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	path := g.anim.CurrentSprite()
	img, err := g.images.Get(path)
	if err != nil {
		img = g.images.Placeholder(96, 96, color.RGBA{0xff, 0x00, 0xff, 0xff})
	}
	fw := img.Bounds().Dx()
	fh := img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(previewSize-fw)/2, float64(previewSize-fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s / %s  frame %d\n%s\narrows: clip / tier",
		g.modes[g.modeIdx], g.slots[g.slotIdx], g.anim.Frame(), path))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

// checkFiles reports every referenced sprite that does not exist on disk.
func checkFiles(table obj.SpriteTable) error {
	var errs []error
	seen := map[string]bool{}
	check := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		if _, err := os.Stat(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", obj.ErrMissingSprite, p))
		}
	}
	for _, m := range obj.Modes() {
		set := table[m]
		check(set.Default)
		for _, slot := range obj.CharacterSlots() {
			for _, p := range set.Clips[slot] {
				check(p)
			}
		}
	}
	return errors.Join(errs...)
}

func main() {
	resources := flag.String("resources", "Resources", "directory holding Sprites/")
	check := flag.Bool("check", false, "validate the sprite table and exit")
	interval := flag.Int("interval", 100, "preview frame interval in milliseconds")
	flag.Parse()

	spec, err := prefabs.LoadCharacterSpec()
	if err != nil {
		log.Fatal(err)
	}
	table, err := spec.SpriteTable(*resources)
	if err != nil {
		log.Fatal(err)
	}

	if *check {
		if err := errors.Join(table.Validate(), checkFiles(table)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("sprites: ok")
		return
	}

	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("Sprite Preview")
	if err := ebiten.RunGame(newPreview(table, *interval)); err != nil {
		log.Fatal(err)
	}
}
