package obj

import "github.com/milk9111/plumber/common"

// Key is a logical key the game reads; backends map physical buttons to it.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyJump
	KeyFire
	KeyModeSmall
	KeyModeBig
	KeyModeFire
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	case KeyFire:
		return "fire"
	case KeyModeSmall:
		return "mode_small"
	case KeyModeBig:
		return "mode_big"
	case KeyModeFire:
		return "mode_fire"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Input reports which logical keys are currently held.
type Input interface {
	IsKeyPressed(k Key) bool
	ExitRequested() bool
}

// CollisionResolver recomputes the contact state of every tracked box. It has
// to run after Behavior and before PhysicProcess each frame.
type CollisionResolver interface {
	ResolveCollisions(dt float64)
}

// Lifecycle removes objects marked for destruction.
type Lifecycle interface {
	PurgeDestroyed(rt RenderTarget)
}

// Drawable is anything the renderer can draw.
type Drawable interface {
	AnimationObject() *AnimationObject
	Box() *CollisionBox
}

// RenderTarget receives drawables and the camera position once per frame.
type RenderTarget interface {
	AddChild(d Drawable)
	RemoveChild(d Drawable)
	Update(camera common.Vec2)
}
