package obj

import (
	"bytes"
	"io"
	"log"
	"math"
	"testing"

	"github.com/milk9111/plumber/common"
)

type fakeInput struct {
	held map[Key]bool
	exit bool
}

func keys(ks ...Key) *fakeInput {
	in := &fakeInput{held: map[Key]bool{}}
	for _, k := range ks {
		in.held[k] = true
	}
	return in
}

func (f *fakeInput) IsKeyPressed(k Key) bool { return f.held[k] }
func (f *fakeInput) ExitRequested() bool     { return f.exit }

func newTestCharacter(mode Mode, in Input) *Character {
	c := NewCharacter(CharacterConfig{
		Position:  common.Vec2{X: 100, Y: 50},
		Mode:      mode,
		JumpPower: 500,
		MoveSpeed: 200,
		Gravity:   9.8,
		Sprites:   DefaultSpriteTable("res"),
	}, in)
	c.SetLogger(log.New(io.Discard, "", 0))
	return c
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBehaviorJumpOnlyWhenGrounded(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		wantVY   float64
		wantJump bool
	}{
		{"grounded", true, 500, true},
		{"airborne", false, -3, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(ModeSmall, keys(KeyJump))
			ch.SetGrounded(c.grounded)
			ch.SetVelocity(common.Vec2{Y: -3})

			ch.Behavior()

			if ch.Velocity().Y != c.wantVY {
				t.Fatalf("expected vy %v, got %v", c.wantVY, ch.Velocity().Y)
			}
			if ch.IsJumping() != c.wantJump {
				t.Fatalf("expected jumping=%v, got %v", c.wantJump, ch.IsJumping())
			}
			if ch.IsGrounded() {
				t.Fatalf("jump should leave the character airborne")
			}
		})
	}
}

func TestBehaviorHorizontal(t *testing.T) {
	cases := []struct {
		name        string
		in          *fakeInput
		startFacing bool
		wantVX      float64
		wantRunning bool
		wantFacing  bool
	}{
		{"left", keys(KeyLeft), true, -200, true, false},
		{"right", keys(KeyRight), false, 200, true, true},
		{"both_left_wins", keys(KeyLeft, KeyRight), true, -200, true, false},
		{"none_keeps_facing_left", keys(), false, 0, false, false},
		{"none_keeps_facing_right", keys(), true, 0, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(ModeSmall, c.in)
			ch.SetFacingRight(c.startFacing)
			ch.SetVelocity(common.Vec2{X: 77})

			ch.Behavior()

			if ch.Velocity().X != c.wantVX {
				t.Fatalf("expected vx %v, got %v", c.wantVX, ch.Velocity().X)
			}
			if ch.IsRunning() != c.wantRunning {
				t.Fatalf("expected running=%v, got %v", c.wantRunning, ch.IsRunning())
			}
			if ch.IsFacingRight() != c.wantFacing {
				t.Fatalf("expected facingRight=%v, got %v", c.wantFacing, ch.IsFacingRight())
			}
			wantScale := 1.0
			if !c.wantFacing {
				wantScale = -1
			}
			if s := ch.AnimationObject().Scale(); s.X != wantScale || s.Y != 1 {
				t.Fatalf("expected scale (%v,1), got %+v", wantScale, s)
			}
		})
	}
}

func TestBehaviorDeadIgnoresInput(t *testing.T) {
	ch := newTestCharacter(ModeFire, keys(KeyLeft, KeyJump, KeyFire))
	ch.SetGrounded(true)
	ch.SetDead(true)
	ch.SetVelocity(common.Vec2{X: 5, Y: 1})

	ch.Behavior()

	if v := ch.Velocity(); v.X != 5 || v.Y != 1 {
		t.Fatalf("dead character velocity changed: %+v", v)
	}
	if n := ch.PendingFireballs(); n != 0 {
		t.Fatalf("dead character fired %d fireballs", n)
	}
	if got := ch.AnimationObject().CurrentAnimation(); got != AnimDeath {
		t.Fatalf("expected death clip, got %s", got)
	}
}

func TestAnimationSelection(t *testing.T) {
	cases := []struct {
		name    string
		in      *fakeInput
		jumping bool
		dead    bool
		want    AnimSlot
	}{
		{"idle", keys(), false, false, AnimNone},
		{"run", keys(KeyRight), false, false, AnimRun},
		{"jump_beats_run", keys(KeyRight), true, false, AnimJump},
		{"death_beats_all", keys(KeyRight), true, true, AnimDeath},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(ModeSmall, c.in)
			ch.jumping = c.jumping
			ch.SetDead(c.dead)

			ch.Behavior()

			anim := ch.AnimationObject()
			if anim.CurrentAnimation() != c.want {
				t.Fatalf("expected %s, got %s", c.want, anim.CurrentAnimation())
			}
			if c.want == AnimNone && anim.CurrentSprite() != anim.DefaultSprite() {
				t.Fatalf("idle should show the default sprite, got %s", anim.CurrentSprite())
			}
		})
	}
}

func TestAnimationClipNotRestartedWhileRunning(t *testing.T) {
	ch := newTestCharacter(ModeSmall, keys(KeyRight))
	ch.Behavior()
	ch.UpdateAnimation(0.03)
	if ch.AnimationObject().Frame() != 1 {
		t.Fatalf("expected run clip on frame 1, got %d", ch.AnimationObject().Frame())
	}

	ch.Behavior()

	if ch.AnimationObject().Frame() != 1 {
		t.Fatalf("run clip restarted, frame %d", ch.AnimationObject().Frame())
	}
}

func TestPhysicProcessApexScenario(t *testing.T) {
	ch := newTestCharacter(ModeSmall, nil)
	ch.SetVelocity(common.Vec2{X: 0, Y: -5})

	ch.PhysicProcess(0.02)

	if !approx(ch.Velocity().Y, -4.412) {
		t.Fatalf("expected vy -4.412, got %v", ch.Velocity().Y)
	}
	if !approx(ch.Position().Y, 49.9) {
		t.Fatalf("expected y 49.9, got %v", ch.Position().Y)
	}
	if ch.GravityMultiplier() != 3 {
		t.Fatalf("expected multiplier 3, got %d", ch.GravityMultiplier())
	}
	if ch.Box().Position != ch.Position() {
		t.Fatalf("box %+v and position %+v diverged", ch.Box().Position, ch.Position())
	}
}

func TestPhysicProcessGroundSnapScenario(t *testing.T) {
	cases := []struct {
		name    string
		gravity float64
		wantVY  float64
	}{
		{"no_gravity", 0, 0},
		// vy is zeroed by the snap, then gravity for the next frame is applied
		{"gravity", 9.8, 0.02 * 9.8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(ModeSmall, nil)
			ch.ApplyTuning(Tuning{JumpPower: 500, MoveSpeed: 200, Gravity: c.gravity})
			ch.gravityMultiplier = gravityMultiplierFall
			ch.jumping = true
			ch.SetVelocity(common.Vec2{Y: -40})
			ch.SetGrounded(true)
			ch.SetStandingOn(Block{Position: common.Vec2{X: 100, Y: 200}, Width: 96, Height: 20})

			ch.PhysicProcess(0.02)

			if !approx(ch.Position().Y, 234) {
				t.Fatalf("expected y 234, got %v", ch.Position().Y)
			}
			if !approx(ch.Velocity().Y, c.wantVY) {
				t.Fatalf("expected vy %v, got %v", c.wantVY, ch.Velocity().Y)
			}
			if ch.GravityMultiplier() != 1 {
				t.Fatalf("expected multiplier 1, got %d", ch.GravityMultiplier())
			}
			if ch.IsJumping() {
				t.Fatalf("landing should clear jumping")
			}
		})
	}
}

func TestPhysicProcessContacts(t *testing.T) {
	cases := []struct {
		name    string
		side    ContactSide
		vel     common.Vec2
		wantVX  float64
		wantX   float64
		wantVY0 float64
	}{
		{"left_wall", ContactLeft, common.Vec2{X: -200, Y: 10}, 0, 96, 10},
		{"right_wall", ContactRight, common.Vec2{X: 200, Y: 10}, 0, 104, 10},
		{"ceiling", ContactTop, common.Vec2{X: 0, Y: 10}, 0, 100, -10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(ModeSmall, nil)
			ch.ApplyTuning(Tuning{Gravity: 0})
			ch.SetVelocity(c.vel)
			ch.Box().State = c.side

			ch.PhysicProcess(0.02)

			if ch.Velocity().X != c.wantVX {
				t.Fatalf("expected vx %v, got %v", c.wantVX, ch.Velocity().X)
			}
			if !approx(ch.Position().X, c.wantX) {
				t.Fatalf("expected x %v, got %v", c.wantX, ch.Position().X)
			}
			if ch.Velocity().Y != c.wantVY0 {
				t.Fatalf("expected vy %v, got %v", c.wantVY0, ch.Velocity().Y)
			}
		})
	}
}

func TestSetLoggerCapturesModeErrors(t *testing.T) {
	var buf bytes.Buffer
	ch := newTestCharacter(ModeSmall, nil)
	ch.SetLogger(log.New(&buf, "", 0))

	_ = ch.SetMode(Mode(42))

	if !bytes.Contains(buf.Bytes(), []byte("character: unexpected mode 42")) {
		t.Fatalf("expected log line, got %q", buf.String())
	}
}

func TestApplyTuningKeepsState(t *testing.T) {
	ch := newTestCharacter(ModeFire, keys(KeyRight))
	ch.SetPosition(common.Vec2{X: 10, Y: 20})

	ch.ApplyTuning(Tuning{JumpPower: 1, MoveSpeed: 50, Gravity: -1, FireCooldownFrames: 3})
	ch.Behavior()

	if ch.Mode() != ModeFire || ch.Health() != 3 {
		t.Fatalf("tuning changed mode/health: %s %d", ch.Mode(), ch.Health())
	}
	if ch.Position() != (common.Vec2{X: 10, Y: 20}) {
		t.Fatalf("tuning moved the character to %+v", ch.Position())
	}
	if ch.Velocity().X != 50 {
		t.Fatalf("expected new move speed 50, got %v", ch.Velocity().X)
	}
}
