package obj

import (
	"errors"
	"fmt"
	"path/filepath"
)

var ErrMissingSprite = errors.New("character: missing sprite")

// SpriteSet is the sprite family of one tier.
type SpriteSet struct {
	Default string
	Clips   map[AnimSlot][]string
}

// SpriteTable resolves (tier, clip) to asset paths.
type SpriteTable map[Mode]SpriteSet

// CharacterSlots lists the clips every tier must provide.
func CharacterSlots() []AnimSlot {
	return []AnimSlot{AnimRun, AnimJump, AnimDeath}
}

// DefaultSpriteTable builds the conventional layout
// <resourceDir>/Sprites/Mario/<Tag>/mario_<clip><n>.png.
func DefaultSpriteTable(resourceDir string) SpriteTable {
	table := make(SpriteTable, len(modeProfiles))
	for _, m := range Modes() {
		dir := filepath.ToSlash(filepath.Join(resourceDir, "Sprites", "Mario", modeProfiles[m].Tag))
		table[m] = SpriteSet{
			Default: dir + "/mario_default.png",
			Clips: map[AnimSlot][]string{
				AnimRun:   numberedFrames(dir+"/mario_run", 3),
				AnimJump:  {dir + "/mario_jump.png"},
				AnimDeath: {dir + "/mario_death.png"},
			},
		}
	}
	return table
}

func numberedFrames(prefix string, n int) []string {
	frames := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		frames = append(frames, fmt.Sprintf("%s%d.png", prefix, i))
	}
	return frames
}

// Merge returns a copy of t with every non-empty entry of override applied.
func (t SpriteTable) Merge(override SpriteTable) SpriteTable {
	out := make(SpriteTable, len(t))
	for m, set := range t {
		out[m] = set.clone()
	}
	for m, set := range override {
		base := out[m].clone()
		if set.Default != "" {
			base.Default = set.Default
		}
		for slot, frames := range set.Clips {
			if len(frames) > 0 {
				base.Clips[slot] = append([]string(nil), frames...)
			}
		}
		out[m] = base
	}
	return out
}

func (s SpriteSet) clone() SpriteSet {
	clips := make(map[AnimSlot][]string, len(s.Clips))
	for slot, frames := range s.Clips {
		clips[slot] = append([]string(nil), frames...)
	}
	return SpriteSet{Default: s.Default, Clips: clips}
}

// Validate reports every tier/clip combination without frames.
func (t SpriteTable) Validate() error {
	var errs []error
	for _, m := range Modes() {
		set, ok := t[m]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: mode %s has no sprite set", ErrMissingSprite, m))
			continue
		}
		if set.Default == "" {
			errs = append(errs, fmt.Errorf("%w: mode %s has no default sprite", ErrMissingSprite, m))
		}
		for _, slot := range CharacterSlots() {
			if len(set.Clips[slot]) == 0 {
				errs = append(errs, fmt.Errorf("%w: mode %s has no %s frames", ErrMissingSprite, m, slot))
			}
		}
	}
	return errors.Join(errs...)
}
