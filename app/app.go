package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/obj"
)

// State is the run state of the App.
type State int

const (
	StateStart State = iota
	StateUpdate
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateUpdate:
		return "update"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

var ErrMissingDependency = errors.New("app: missing dependency")

// World resolves contacts and accepts spawned bodies.
type World interface {
	obj.CollisionResolver
	Track(b obj.Body)
	Contains(p common.Vec2) bool
}

// Objects owns spawned objects.
type Objects interface {
	obj.Lifecycle
	Add(o obj.Object)
	Update(dt float64)
	Objects() []obj.Object
}

type boundable interface {
	Position() common.Vec2
	MarkDestroyed()
}

// Deps are the collaborators one App drives.
type Deps struct {
	Character *obj.Character
	Input     obj.Input
	World     World
	Objects   Objects
	Render    obj.RenderTarget
	Camera    *obj.Camera
	Logger    *log.Logger

	// HurtInvulnerability is how long in seconds hazards are ignored after a hit.
	HurtInvulnerability float64
}

// App runs one frame of the game in a fixed order.
type App struct {
	character *obj.Character
	input     obj.Input
	world     World
	objects   Objects
	render    obj.RenderTarget
	camera    *obj.Camera
	logger    *log.Logger

	state        State
	frame        int
	invulnerable float64
	hurtCooldown float64
	hazardPrev   bool
}

func New(d Deps) (*App, error) {
	switch {
	case d.Character == nil:
		return nil, fmt.Errorf("%w: character", ErrMissingDependency)
	case d.World == nil:
		return nil, fmt.Errorf("%w: world", ErrMissingDependency)
	case d.Objects == nil:
		return nil, fmt.Errorf("%w: objects", ErrMissingDependency)
	case d.Render == nil:
		return nil, fmt.Errorf("%w: render target", ErrMissingDependency)
	}
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	camera := d.Camera
	if camera == nil {
		camera = obj.NewCamera(common.BaseWidth, common.BaseHeight, 1)
	}

	a := &App{
		character:    d.Character,
		input:        d.Input,
		world:        d.World,
		objects:      d.Objects,
		render:       d.Render,
		camera:       camera,
		logger:       logger,
		hurtCooldown: d.HurtInvulnerability,
	}
	a.world.Track(a.character)
	a.render.AddChild(a.character)
	return a, nil
}

func (a *App) State() State              { return a.state }
func (a *App) Frame() int                { return a.frame }
func (a *App) Character() *obj.Character { return a.character }
func (a *App) Camera() *obj.Camera       { return a.camera }

// Invulnerable reports whether hazards are currently ignored.
func (a *App) Invulnerable() bool { return a.invulnerable > 0 }

// SetHurtInvulnerability changes the grace period granted after a hit.
func (a *App) SetHurtInvulnerability(seconds float64) { a.hurtCooldown = seconds }

// Update advances the game by rawDelta seconds, capped at common.MaxDeltaTime,
// and returns the step actually used.
func (a *App) Update(rawDelta float64) float64 {
	dt := common.Clamp(rawDelta, 0, common.MaxDeltaTime)
	if a.state == StateEnd {
		return dt
	}
	a.state = StateUpdate
	a.frame++

	a.character.Behavior()
	a.world.ResolveCollisions(dt)
	a.character.PhysicProcess(dt)
	a.applyDamage(dt)
	a.character.UpdateAnimation(dt)

	a.objects.PurgeDestroyed(a.render)
	a.fireballUpdate(dt)

	a.modeKeys()

	if a.quitRequested() {
		a.logger.Printf("app: quit requested at frame %d", a.frame)
		a.state = StateEnd
	}

	a.camera.Follow(a.character.Position())
	a.render.Update(a.camera.Position())
	return dt
}

func (a *App) applyDamage(dt float64) {
	if a.invulnerable > 0 {
		a.invulnerable -= dt
		if a.invulnerable <= 0 {
			// still standing on the hazard when the grace period ends counts as a new hit
			a.hazardPrev = false
		}
	}
	touching := a.character.HazardContact()
	if touching && !a.hazardPrev && a.invulnerable <= 0 && !a.character.IsDead() {
		a.character.Hurt()
		a.invulnerable = a.hurtCooldown
	}
	a.hazardPrev = touching
}

func (a *App) fireballUpdate(dt float64) {
	for _, f := range a.character.DrainFireballs() {
		a.objects.Add(f)
		a.world.Track(f)
		a.render.AddChild(f)
	}

	a.objects.Update(dt)
	for _, o := range a.objects.Objects() {
		b, ok := o.(boundable)
		if !ok {
			continue
		}
		if !a.world.Contains(b.Position()) {
			b.MarkDestroyed()
		}
	}
}

func (a *App) modeKeys() {
	if a.input == nil {
		return
	}
	var (
		mode obj.Mode
		hit  bool
	)
	switch {
	case a.input.IsKeyPressed(obj.KeyModeSmall):
		mode, hit = obj.ModeSmall, true
	case a.input.IsKeyPressed(obj.KeyModeBig):
		mode, hit = obj.ModeBig, true
	case a.input.IsKeyPressed(obj.KeyModeFire):
		mode, hit = obj.ModeFire, true
	}
	if hit && !a.character.IsDead() {
		if err := a.character.SetMode(mode); err != nil {
			a.logger.Printf("app: set mode: %v", err)
		}
	}
}

func (a *App) quitRequested() bool {
	if a.input == nil {
		return false
	}
	return a.input.IsKeyPressed(obj.KeyQuit) || a.input.ExitRequested()
}
