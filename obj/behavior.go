package obj

import "github.com/milk9111/plumber/common"

// Behavior turns this frame's input into intent. A dead character ignores
// input but still gets its animation resolved.
func (c *Character) Behavior() {
	c.tickFireCooldown()

	if !c.dead && c.input != nil {
		if c.input.IsKeyPressed(KeyJump) && c.grounded {
			c.velocity.Y = c.jumpPower
			c.jumping = true
			c.grounded = false
			c.events.Push(Event{Kind: EventJumped, Mode: c.mode})
		}

		if c.input.IsKeyPressed(KeyLeft) {
			c.velocity.X = -c.moveSpeed
			c.running = true
			c.facingRight = false
		} else if c.input.IsKeyPressed(KeyRight) {
			c.velocity.X = c.moveSpeed
			c.running = true
			c.facingRight = true
		} else {
			c.running = false
			c.velocity.X = 0
		}

		if c.input.IsKeyPressed(KeyFire) {
			c.TryFire()
		}
	}

	c.animationHandle()
}

// resolveClip picks the clip matching the current state, AnimNone for idle.
func (c *Character) resolveClip() AnimSlot {
	switch {
	case c.dead:
		return AnimDeath
	case c.jumping:
		return AnimJump
	case c.running:
		return AnimRun
	default:
		return AnimNone
	}
}

func (c *Character) animationHandle() {
	next := c.resolveClip()
	if next == AnimNone {
		c.anim.ShowDefault()
	} else if next != c.anim.CurrentAnimation() {
		c.anim.SetAnimation(next, clipIntervalMs)
		c.anim.SetLooping(true)
		c.anim.PlayAnimation()
	}

	if c.facingRight {
		c.anim.SetScale(common.Vec2{X: 1, Y: 1})
	} else {
		c.anim.SetScale(common.Vec2{X: -1, Y: 1})
	}
}
