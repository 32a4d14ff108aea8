package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/plumber/obj"
)

// Bindings maps logical keys to physical keyboard keys.
type Bindings map[obj.Key][]ebiten.Key

// DefaultBindings is the WASD/arrows layout with J to fire and Z/X/C to
// switch tiers.
func DefaultBindings() Bindings {
	return Bindings{
		obj.KeyLeft:      {ebiten.KeyA, ebiten.KeyLeft},
		obj.KeyRight:     {ebiten.KeyD, ebiten.KeyRight},
		obj.KeyJump:      {ebiten.KeyW, ebiten.KeySpace, ebiten.KeyUp},
		obj.KeyFire:      {ebiten.KeyJ},
		obj.KeyModeSmall: {ebiten.KeyZ},
		obj.KeyModeBig:   {ebiten.KeyX},
		obj.KeyModeFire:  {ebiten.KeyC},
		obj.KeyQuit:      {ebiten.KeyEscape},
	}
}

var gamepadButtons = map[obj.Key]ebiten.StandardGamepadButton{
	obj.KeyJump: ebiten.StandardGamepadButtonRightBottom,
	obj.KeyFire: ebiten.StandardGamepadButtonRightLeft,
	obj.KeyQuit: ebiten.StandardGamepadButtonCenterRight,
}

// Keyboard samples the keyboard and the first gamepad once per frame.
type Keyboard struct {
	bindings Bindings
	held     map[obj.Key]bool
	closing  bool

	// DebugToggled is true on the frame F3 was pressed.
	DebugToggled bool
}

func NewKeyboard(b Bindings) *Keyboard {
	if b == nil {
		b = DefaultBindings()
	}
	return &Keyboard{bindings: b, held: make(map[obj.Key]bool, len(b))}
}

// Update polls ebiten. Call it once at the start of every game tick.
func (k *Keyboard) Update() {
	for key, phys := range k.bindings {
		pressed := false
		for _, p := range phys {
			if ebiten.IsKeyPressed(p) {
				pressed = true
				break
			}
		}
		k.held[key] = pressed
	}

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if leftX < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
				k.held[obj.KeyLeft] = true
			} else if leftX > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
				k.held[obj.KeyRight] = true
			}
			for key, btn := range gamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gid, btn) {
					k.held[key] = true
				}
			}
		}
	}

	k.DebugToggled = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	k.closing = ebiten.IsWindowBeingClosed()
}

func (k *Keyboard) IsKeyPressed(key obj.Key) bool {
	return k.held[key]
}

func (k *Keyboard) ExitRequested() bool {
	return k.closing
}
