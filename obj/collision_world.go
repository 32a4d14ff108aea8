package obj

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/plumber/common"
)

// collisionSkin grows every queried box so bodies resting exactly on a
// surface still report the contact.
const collisionSkin = 1.0

// Body is anything whose box the collision world keeps up to date.
type Body interface {
	Box() *CollisionBox
}

type groundAware interface {
	Velocity() common.Vec2
	SetGrounded(grounded bool)
	SetStandingOn(b Block)
}

type positioned interface {
	SetPosition(p common.Vec2)
}

type hazardAware interface {
	SetHazardContact(touching bool)
}

// CollisionWorld holds the level blocks as static shapes in a chipmunk space
// and classifies how tracked bodies touch them.
type CollisionWorld struct {
	level  *Level
	space  *cp.Space
	bodies []Body
	logger *log.Logger
}

func NewCollisionWorld(level *Level) *CollisionWorld {
	cw := &CollisionWorld{
		level:  level,
		space:  cp.NewSpace(),
		logger: log.Default(),
	}
	cw.buildStaticShapes()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw.level == nil {
		return
	}
	for i, b := range cw.level.Blocks {
		r := b.Rect()
		bb := cp.BB{L: r.Left(), B: r.Bottom(), R: r.Right(), T: r.Top()}
		shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
		shape.UserData = i
		if b.Hazard {
			shape.SetSensor(true)
		}
		cw.space.AddShape(shape)
	}
}

func (cw *CollisionWorld) SetLogger(l *log.Logger) {
	if l != nil {
		cw.logger = l
	}
}

// Track starts resolving contacts for b. Tracking the same body twice is a no-op.
func (cw *CollisionWorld) Track(b Body) {
	for _, existing := range cw.bodies {
		if existing == b {
			return
		}
	}
	cw.bodies = append(cw.bodies, b)
}

// Untrack stops resolving contacts for b.
func (cw *CollisionWorld) Untrack(b Body) {
	for i, existing := range cw.bodies {
		if existing == b {
			cw.bodies = append(cw.bodies[:i], cw.bodies[i+1:]...)
			return
		}
	}
}

// Tracked reports how many bodies are tracked.
func (cw *CollisionWorld) Tracked() int { return len(cw.bodies) }

// ResolveCollisions writes the contact side, grounded state, supporting block
// and hazard contact of every tracked body. A moving body that has stepped
// into a wall is put back against the wall face; nothing else is moved.
func (cw *CollisionWorld) ResolveCollisions(dt float64) {
	for _, b := range cw.bodies {
		cw.resolve(b, dt)
	}
}

func (cw *CollisionWorld) resolve(b Body, dt float64) {
	box := b.Box()
	r := box.Rect()

	var (
		velocity common.Vec2
		mover    groundAware
	)
	if g, ok := b.(groundAware); ok {
		mover = g
		velocity = g.Velocity()
	}
	prev := r
	prev.Center = r.Center.Sub(velocity.Scale(dt))

	side := ContactNone
	hazard := false
	grounded := false
	var support Block
	pushX, pushed := 0.0, false

	query := cp.BB{
		L: r.Left() - collisionSkin,
		B: r.Bottom() - collisionSkin,
		R: r.Right() + collisionSkin,
		T: r.Top() + collisionSkin,
	}
	cw.space.BBQuery(query, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		idx, ok := shape.UserData.(int)
		if !ok || idx < 0 || idx >= len(cw.level.Blocks) {
			cw.logger.Printf("collision: shape without block index %v", shape.UserData)
			return
		}
		block := cw.level.Blocks[idx]
		if block.Hazard {
			hazard = true
			return
		}

		kind := classify(r, prev, block.Rect(), mover != nil)
		if x, ok := wallExit(r, block.Rect(), kind); ok && mover != nil {
			pushX, pushed = x, true
		}

		switch kind {
		case contactGround:
			if velocity.Y > 0 {
				return
			}
			if !grounded || block.Rect().Top() > support.Rect().Top() {
				support = block
			}
			grounded = true
		case contactCeiling:
			if mover == nil || velocity.Y > 0 {
				side = ContactTop
			}
		case contactWallLeft:
			if mover == nil || velocity.X <= 0 {
				side = ContactLeft
			}
		case contactWallRight:
			if mover == nil || velocity.X >= 0 {
				side = ContactRight
			}
		}
	}, nil)

	// fireballs explode on any surface, floors included
	if mover == nil && grounded && side == ContactNone {
		side = ContactTop
	}

	if p, ok := b.(positioned); ok && pushed {
		p.SetPosition(common.Vec2{X: pushX, Y: box.Position.Y})
	}

	box.State = side
	if mover != nil {
		mover.SetGrounded(grounded)
		if grounded {
			mover.SetStandingOn(support)
		}
	}
	if h, ok := b.(hazardAware); ok {
		h.SetHazardContact(hazard)
	}
}

type contactKind int

const (
	contactGround contactKind = iota
	contactCeiling
	contactWallLeft
	contactWallRight
)

// classify decides which face of block the body touches. Moving bodies use
// where they were before the last step, which keeps fast falls from being
// mistaken for wall hits; everything else uses the axis of least penetration.
func classify(body, prev, block common.Rect, useHistory bool) contactKind {
	if useHistory {
		switch {
		case body.Bottom() >= block.Top()-collisionSkin || prev.Bottom() >= block.Top()-collisionSkin:
			return contactGround
		case body.Top() <= block.Bottom()+collisionSkin || prev.Top() <= block.Bottom()+collisionSkin:
			return contactCeiling
		}
	} else {
		overlapX := math.Min(body.Right(), block.Right()) - math.Max(body.Left(), block.Left())
		overlapY := math.Min(body.Top(), block.Top()) - math.Max(body.Bottom(), block.Bottom())
		if overlapY <= overlapX {
			if body.Center.Y >= block.Center.Y {
				return contactGround
			}
			return contactCeiling
		}
	}
	if body.Center.X >= block.Center.X {
		return contactWallLeft
	}
	return contactWallRight
}

// wallExit returns the x that puts body flush against the wall it overlaps.
// Overlaps deeper vertically than horizontally are left alone; those are
// floors or ceilings seen from an odd angle, not walls.
func wallExit(body, block common.Rect, kind contactKind) (float64, bool) {
	if kind != contactWallLeft && kind != contactWallRight {
		return 0, false
	}
	overlapX := math.Min(body.Right(), block.Right()) - math.Max(body.Left(), block.Left())
	overlapY := math.Min(body.Top(), block.Top()) - math.Max(body.Bottom(), block.Bottom())
	if overlapX <= 0 || overlapX >= overlapY {
		return 0, false
	}
	if kind == contactWallLeft {
		return block.Right() + body.Width/2, true
	}
	return block.Left() - body.Width/2, true
}

// Contains reports whether p lies inside the level bounds.
func (cw *CollisionWorld) Contains(p common.Vec2) bool {
	if cw.level == nil {
		return true
	}
	return p.X >= 0 && p.X <= cw.level.Width && p.Y >= 0 && p.Y <= cw.level.Height
}
