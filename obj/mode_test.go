package obj

import (
	"errors"
	"strings"
	"testing"
)

func TestSetModeLargeTierBoxIdempotent(t *testing.T) {
	ch := newTestCharacter(ModeSmall, nil)

	if err := ch.SetMode(ModeFire); err != nil {
		t.Fatalf("SetMode(Fire): %v", err)
	}
	fire := *ch.Box()
	if err := ch.SetMode(ModeBig); err != nil {
		t.Fatalf("SetMode(Big): %v", err)
	}
	big := *ch.Box()

	for _, b := range []CollisionBox{fire, big} {
		if b.Width != 48 || b.Height != 96 {
			t.Fatalf("expected 48x96 box, got %vx%v", b.Width, b.Height)
		}
	}
}

func TestSetModeSameTierIsNoop(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			ch := newTestCharacter(m, nil)
			anim := ch.AnimationObject()
			beforeDefault := anim.DefaultSprite()
			beforeRun := anim.AnimationPaths(AnimRun)
			beforeBox := *ch.Box()
			_ = ch.DrainEvents()

			if err := ch.SetMode(m); err != nil {
				t.Fatalf("SetMode: %v", err)
			}

			if anim.DefaultSprite() != beforeDefault {
				t.Fatalf("default sprite changed: %s -> %s", beforeDefault, anim.DefaultSprite())
			}
			if strings.Join(anim.AnimationPaths(AnimRun), ",") != strings.Join(beforeRun, ",") {
				t.Fatalf("run frames changed")
			}
			if *ch.Box() != beforeBox {
				t.Fatalf("box changed: %+v -> %+v", beforeBox, *ch.Box())
			}
			if evts := ch.DrainEvents(); len(evts) != 0 {
				t.Fatalf("expected no events, got %v", evts)
			}
		})
	}
}

func TestSetModeInvalidLeavesStateAlone(t *testing.T) {
	ch := newTestCharacter(ModeBig, nil)
	before := *ch.Box()

	err := ch.SetMode(Mode(7))

	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if ch.Mode() != ModeBig || ch.Health() != 2 || *ch.Box() != before {
		t.Fatalf("invalid mode changed state: mode=%s health=%d box=%+v", ch.Mode(), ch.Health(), *ch.Box())
	}
}

func TestSetModeSwapsSpriteFamily(t *testing.T) {
	ch := newTestCharacter(ModeSmall, nil)

	if err := ch.SetMode(ModeFire); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	anim := ch.AnimationObject()
	if got, want := anim.DefaultSprite(), "res/Sprites/Mario/Fire/mario_default.png"; got != want {
		t.Fatalf("expected default %s, got %s", want, got)
	}
	for _, slot := range CharacterSlots() {
		for _, p := range anim.AnimationPaths(slot) {
			if !strings.Contains(p, "/Fire/") {
				t.Fatalf("%s frame %s not swapped to the Fire family", slot, p)
			}
		}
	}
	if !ch.CanFire() || ch.Health() != 3 {
		t.Fatalf("expected fire profile, got canFire=%v health=%d", ch.CanFire(), ch.Health())
	}
}

func TestSetModeMissingClipKeepsPreviousFrames(t *testing.T) {
	table := DefaultSpriteTable("res")
	big := table[ModeBig]
	delete(big.Clips, AnimDeath)
	table[ModeBig] = big

	ch := newTestCharacter(ModeSmall, nil)
	ch.sprites = table
	before := ch.AnimationObject().AnimationPaths(AnimDeath)

	if err := ch.SetMode(ModeBig); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	after := ch.AnimationObject().AnimationPaths(AnimDeath)
	if strings.Join(after, ",") != strings.Join(before, ",") {
		t.Fatalf("expected death frames kept, got %v", after)
	}
	if !errors.Is(table.Validate(), ErrMissingSprite) {
		t.Fatalf("Validate should report the missing clip")
	}
}

func TestHurt(t *testing.T) {
	cases := []struct {
		name      string
		start     Mode
		wantMode  Mode
		wantDead  bool
		wantFire  bool
		wantEvent EventKind
	}{
		{"fire_to_big", ModeFire, ModeBig, false, false, EventHurt},
		{"big_to_small", ModeBig, ModeSmall, false, false, EventHurt},
		{"small_dies", ModeSmall, ModeSmall, true, false, EventDied},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := newTestCharacter(c.start, nil)
			_ = ch.DrainEvents()

			ch.Hurt()

			if ch.Mode() != c.wantMode {
				t.Fatalf("expected mode %s, got %s", c.wantMode, ch.Mode())
			}
			if ch.IsDead() != c.wantDead {
				t.Fatalf("expected dead=%v, got %v", c.wantDead, ch.IsDead())
			}
			if ch.CanFire() != c.wantFire {
				t.Fatalf("expected canFire=%v, got %v", c.wantFire, ch.CanFire())
			}
			evts := ch.DrainEvents()
			if len(evts) == 0 || evts[len(evts)-1].Kind != c.wantEvent {
				t.Fatalf("expected last event %s, got %v", c.wantEvent, evts)
			}
		})
	}
}

func TestHurtWhenDeadIsNoop(t *testing.T) {
	ch := newTestCharacter(ModeSmall, nil)
	ch.Hurt()
	_ = ch.DrainEvents()

	ch.Hurt()

	if evts := ch.DrainEvents(); len(evts) != 0 {
		t.Fatalf("expected no events, got %v", evts)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"small", ModeSmall, false},
		{"Big", ModeBig, false},
		{" FIRE ", ModeFire, false},
		{"tiny", 0, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseMode(c.in)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidMode) {
					t.Fatalf("expected ErrInvalidMode, got %v", err)
				}
				return
			}
			if err != nil || got != c.want {
				t.Fatalf("expected %s, got %s (%v)", c.want, got, err)
			}
		})
	}
}

func TestModeForHealth(t *testing.T) {
	for _, m := range Modes() {
		p, _ := m.Profile()
		got, ok := ModeForHealth(p.Health)
		if !ok || got != m {
			t.Fatalf("health %d: expected %s, got %s", p.Health, m, got)
		}
	}
	if _, ok := ModeForHealth(0); ok {
		t.Fatalf("health 0 should not map to a mode")
	}
}
