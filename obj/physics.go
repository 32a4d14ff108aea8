package obj

import "github.com/milk9111/plumber/common"

// PhysicProcess integrates one step of dt seconds. It reads the contact side
// and supporting block written by the collision manager earlier this frame.
func (c *Character) PhysicProcess(dt float64) {
	pos := c.anim.Position()
	velo := c.velocity

	next := common.Vec2{
		X: pos.X + dt*velo.X,
		Y: pos.Y + dt*velo.Y,
	}

	// A wall only stops the velocity; this frame's horizontal step stands.
	switch c.box.State {
	case ContactLeft, ContactRight:
		velo.X = 0
	case ContactTop:
		velo.Y = -velo.Y
	}

	// Past the apex the character falls with the heavier multiplier.
	if velo.Y <= 0 && !c.grounded {
		c.gravityMultiplier = gravityMultiplierFall
	}

	if c.grounded {
		velo.Y = 0
		c.gravityMultiplier = gravityMultiplierBase
		c.jumping = false

		b := c.standingOn
		next.Y = c.box.Height/2 + b.Position.Y + b.Height/2
	}

	velo.Y += dt * c.gravity * float64(c.gravityMultiplier)

	c.anim.SetPosition(next)
	c.box.Position = next
	c.velocity = velo
}
