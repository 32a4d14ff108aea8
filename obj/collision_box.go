package obj

import "github.com/milk9111/plumber/common"

// ContactSide reports which side of a box is currently touching level geometry.
type ContactSide int

const (
	ContactNone ContactSide = iota
	ContactLeft
	ContactRight
	ContactTop
)

func (s ContactSide) String() string {
	switch s {
	case ContactNone:
		return "none"
	case ContactLeft:
		return "left"
	case ContactRight:
		return "right"
	case ContactTop:
		return "top"
	default:
		return "unknown"
	}
}

// CollisionBox is an axis-aligned box tied to a character or fireball. The
// contact side is written by the collision manager and only read by the owner.
type CollisionBox struct {
	Position common.Vec2
	Width    float64
	Height   float64
	State    ContactSide
}

// Rect returns the box as a common.Rect.
func (b *CollisionBox) Rect() common.Rect {
	return common.Rect{Center: b.Position, Width: b.Width, Height: b.Height}
}

// Block is a piece of static level geometry.
type Block struct {
	Position common.Vec2
	Width    float64
	Height   float64
	Hazard   bool
}

func (b Block) Rect() common.Rect {
	return common.Rect{Center: b.Position, Width: b.Width, Height: b.Height}
}
