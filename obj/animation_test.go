package obj

import (
	"testing"

	"github.com/milk9111/plumber/common"
)

func TestAnimationObjectUpdate(t *testing.T) {
	frames := []string{"a.png", "b.png", "c.png"}
	cases := []struct {
		name         string
		loop         bool
		steps        int
		wantFrame    int
		wantFinished bool
	}{
		{"loop_wraps", true, 4, 1, false},
		{"one_shot_holds_last", false, 5, 2, true},
		{"one_shot_midway", false, 1, 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimationObject("idle.png", common.Vec2{}, 0)
			a.AddAnimation(AnimRoll, frames)
			a.SetAnimation(AnimRoll, 50)
			a.SetLooping(c.loop)
			a.PlayAnimation()

			for i := 0; i < c.steps; i++ {
				a.Update(0.06)
			}

			if a.Frame() != c.wantFrame {
				t.Fatalf("expected frame %d, got %d", c.wantFrame, a.Frame())
			}
			if a.Finished() != c.wantFinished {
				t.Fatalf("expected finished=%v, got %v", c.wantFinished, a.Finished())
			}
			if a.CurrentSprite() != frames[c.wantFrame] {
				t.Fatalf("expected sprite %s, got %s", frames[c.wantFrame], a.CurrentSprite())
			}
		})
	}
}

func TestAnimationObjectShowDefault(t *testing.T) {
	a := NewAnimationObject("idle.png", common.Vec2{}, 0)
	a.AddAnimation(AnimRun, []string{"r1.png", "r2.png"})
	a.SetAnimation(AnimRun, 25)
	a.PlayAnimation()
	a.Update(0.03)

	a.ShowDefault()

	if a.CurrentAnimation() != AnimNone || a.IsPlaying() {
		t.Fatalf("expected no active clip")
	}
	if a.CurrentSprite() != "idle.png" {
		t.Fatalf("expected default sprite, got %s", a.CurrentSprite())
	}
}

func TestAnimationPathsIsACopy(t *testing.T) {
	src := []string{"x.png"}
	a := NewAnimationObject("", common.Vec2{}, 0)
	a.AddAnimation(AnimJump, src)
	src[0] = "changed.png"

	got := a.AnimationPaths(AnimJump)
	got[0] = "also_changed.png"

	if a.AnimationPaths(AnimJump)[0] != "x.png" {
		t.Fatalf("clip frames leaked to the caller")
	}
}

func TestParseAnimSlot(t *testing.T) {
	for _, s := range []AnimSlot{AnimRun, AnimJump, AnimDeath, AnimRoll, AnimExplode} {
		got, err := ParseAnimSlot(s.String())
		if err != nil || got != s {
			t.Fatalf("%s: got %s, %v", s, got, err)
		}
	}
	if _, err := ParseAnimSlot("dance"); err == nil {
		t.Fatalf("expected an error for unknown clip")
	}
}
