package obj

import (
	"errors"
	"testing"
)

func TestDefaultSpriteTableIsComplete(t *testing.T) {
	table := DefaultSpriteTable("Resources")
	if err := table.Validate(); err != nil {
		t.Fatalf("default table should validate: %v", err)
	}
	if got, want := table[ModeBig].Clips[AnimRun][2], "Resources/Sprites/Mario/Big/mario_run3.png"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSpriteTableValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(SpriteTable)
	}{
		{"missing_mode", func(st SpriteTable) { delete(st, ModeFire) }},
		{"missing_default", func(st SpriteTable) {
			s := st[ModeSmall]
			s.Default = ""
			st[ModeSmall] = s
		}},
		{"empty_clip", func(st SpriteTable) { st[ModeBig].Clips[AnimJump] = nil }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table := DefaultSpriteTable("")
			c.mutate(table)
			if err := table.Validate(); !errors.Is(err, ErrMissingSprite) {
				t.Fatalf("expected ErrMissingSprite, got %v", err)
			}
		})
	}
}

func TestSpriteTableMergeDoesNotMutateBase(t *testing.T) {
	base := DefaultSpriteTable("")
	before := base[ModeFire].Clips[AnimDeath][0]

	merged := base.Merge(SpriteTable{
		ModeFire: {Clips: map[AnimSlot][]string{AnimDeath: {"custom/death.png"}}},
	})

	if got := merged[ModeFire].Clips[AnimDeath][0]; got != "custom/death.png" {
		t.Fatalf("expected override, got %s", got)
	}
	if got := merged[ModeFire].Default; got != base[ModeFire].Default {
		t.Fatalf("default should be kept, got %s", got)
	}
	if base[ModeFire].Clips[AnimDeath][0] != before {
		t.Fatalf("base table was mutated")
	}
}
