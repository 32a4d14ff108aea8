package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/plumber/app"
	"github.com/milk9111/plumber/assets"
	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/input"
	"github.com/milk9111/plumber/levels"
	"github.com/milk9111/plumber/obj"
	"github.com/milk9111/plumber/prefabs"
	"github.com/milk9111/plumber/render"
	"github.com/milk9111/plumber/script"
	"golang.org/x/image/colornames"
)

// Options are the command line choices NewGame starts from.
type Options struct {
	Level       string
	Mode        string
	Debug       bool
	ResourceDir string
	Script      string
	Watch       bool
}

type Game struct {
	opts Options

	app       *app.App
	character *obj.Character
	keyboard  *input.Keyboard
	scripted  *script.Input
	renderer  *render.Renderer
	hud       *HUD
	watcher   *prefabs.Watcher
	sfx       map[obj.EventKind]*audio.Player

	background color.Color
	last       time.Time
	paused     bool
	quit       bool
}

func NewGame(opts Options) (*Game, error) {
	src, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	level := obj.NewLevel(src)

	cfg, charSpec, err := prefabs.LoadCharacterConfig(opts.ResourceDir, level.Spawn)
	if err != nil {
		return nil, err
	}
	if opts.Mode != "" {
		if cfg.Mode, err = obj.ParseMode(opts.Mode); err != nil {
			return nil, err
		}
	}
	if err := cfg.Sprites.Validate(); err != nil {
		log.Printf("prefabs: %v", err)
	}

	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		keyboard:   input.NewKeyboard(nil),
		background: colornames.Skyblue,
		sfx:        map[obj.EventKind]*audio.Player{},
	}
	if camSpec.Background != nil {
		g.background = camSpec.Background.Color
	}

	var in obj.Input = g.keyboard
	if opts.Script != "" {
		if err := g.loadScript(opts.Script); err != nil {
			return nil, err
		}
		in = scriptedInput{Input: g.scripted, keyboard: g.keyboard}
	}

	g.character = obj.NewCharacter(cfg, in)

	world := obj.NewCollisionWorld(level)
	objects := obj.NewObjectManager(world)

	images := render.NewImageCache(assets.LoadImage)
	g.renderer = render.NewRenderer(common.BaseWidth, common.BaseHeight, camSpec.Zoom, images)
	g.renderer.SetLevel(level)
	g.renderer.SetDebug(opts.Debug)

	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight, camSpec.Zoom)
	camera.SetSmooth(camSpec.Smoothness)
	camera.SetWorldBounds(level.Width, level.Height)
	camera.SnapTo(level.Spawn)

	g.app, err = app.New(app.Deps{
		Character:           g.character,
		Input:               in,
		World:               world,
		Objects:             objects,
		Render:              g.renderer,
		Camera:              camera,
		HurtInvulnerability: charSpec.HurtInvulnerability,
	})
	if err != nil {
		return nil, err
	}

	g.loadSounds()
	g.hud = NewHUD(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// scriptedInput takes keys from a script but still honors the window close button.
type scriptedInput struct {
	*script.Input
	keyboard *input.Keyboard
}

func (s scriptedInput) ExitRequested() bool {
	return s.keyboard.ExitRequested()
}

func (g *Game) loadScript(path string) error {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return fmt.Errorf("script: load %s: %w", path, err)
	}
	in, err := script.New(path, src)
	if err != nil {
		return err
	}
	if g.scripted == nil {
		g.scripted = in
		return nil
	}
	// keep the pointer shared with the character and the app
	*g.scripted = *in
	return nil
}

func (g *Game) loadSounds() {
	for kind, path := range map[obj.EventKind]string{
		obj.EventJumped:      assets.SfxJump,
		obj.EventFired:       assets.SfxFire,
		obj.EventHurt:        assets.SfxHurt,
		obj.EventDied:        assets.SfxHurt,
		obj.EventModeChanged: assets.SfxPowerUp,
	} {
		p, err := assets.LoadAudioPlayer(path)
		if err != nil {
			log.Printf("assets: %v", err)
			continue
		}
		g.sfx[kind] = p
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	now := time.Now()
	raw := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		raw = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.keyboard.Update()
	if g.keyboard.DebugToggled {
		g.renderer.SetDebug(!g.renderer.Debug())
	}
	g.reloadChanged()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	g.hud.Update()
	if g.quit {
		return ebiten.Termination
	}
	if g.paused {
		return nil
	}

	if g.scripted != nil {
		// errors are logged once by the script and leave every key released
		_ = g.scripted.Poll(g.app.Frame()+1, common.Clamp(raw, 0, common.MaxDeltaTime))
	}

	g.app.Update(raw)
	for _, evt := range g.character.DrainEvents() {
		g.play(evt.Kind)
	}

	if g.app.State() == app.StateEnd {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) play(kind obj.EventKind) {
	p, ok := g.sfx[kind]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("assets: rewind %s: %v", kind, err)
		return
	}
	p.Play()
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Drain() {
		log.Printf("prefabs: reloading %s %s", change.Kind, change.Name())
		switch {
		case change.Kind == prefabs.ChangeScript:
			if g.scripted == nil || change.Name() != filepath.Base(g.opts.Script) {
				continue
			}
			if err := g.loadScript(g.opts.Script); err != nil {
				log.Printf("%v", err)
			}
		case prefabs.IsPrefab(change.Path, prefabs.CharacterFile):
			spec, err := prefabs.LoadCharacterSpec()
			if err != nil {
				log.Printf("prefabs: %v", err)
				continue
			}
			g.character.ApplyTuning(spec.Tuning())
			g.app.SetHurtInvulnerability(spec.HurtInvulnerability)
		case prefabs.IsPrefab(change.Path, prefabs.FireballFile):
			spec, err := prefabs.LoadFireballSpec()
			if err != nil {
				log.Printf("prefabs: %v", err)
				continue
			}
			g.character.SetFireballConfig(spec.ToConfig(g.opts.ResourceDir))
		case prefabs.IsPrefab(change.Path, prefabs.CameraFile):
			spec, err := prefabs.LoadCameraSpec()
			if err != nil {
				log.Printf("prefabs: %v", err)
				continue
			}
			g.app.Camera().SetSmooth(spec.Smoothness)
			g.app.Camera().SetZoom(spec.Zoom)
			g.renderer.Camera().SetZoom(spec.Zoom)
			if spec.Background != nil {
				g.background = spec.Background.Color
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.renderer.Draw(screen)
	g.hud.Draw(screen)

	if g.renderer.Debug() {
		c := g.character
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS: %.2f  frame: %d\npos: %.1f,%.1f  vel: %.1f,%.1f\ngrounded: %v  contact: %s  gravity x%d",
			ebiten.ActualFPS(), g.app.Frame(),
			c.Position().X, c.Position().Y, c.Velocity().X, c.Velocity().Y,
			c.IsGrounded(), c.Box().State, c.GravityMultiplier(),
		), 8, common.BaseHeight-56)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
