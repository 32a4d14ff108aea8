package obj

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the power-up tier of the character.
type Mode int

const (
	ModeSmall Mode = iota
	ModeBig
	ModeFire
)

var ErrInvalidMode = errors.New("character: invalid mode")

// ModeProfile holds everything a tier decides about the character.
type ModeProfile struct {
	BoxWidth  float64
	BoxHeight float64
	Tag       string
	CanFire   bool
	Health    int
}

var modeProfiles = [...]ModeProfile{
	ModeSmall: {BoxWidth: 36, BoxHeight: 48, Tag: "Small", CanFire: false, Health: 1},
	ModeBig:   {BoxWidth: 48, BoxHeight: 96, Tag: "Big", CanFire: false, Health: 2},
	ModeFire:  {BoxWidth: 48, BoxHeight: 96, Tag: "Fire", CanFire: true, Health: 3},
}

// Modes lists every known tier from weakest to strongest.
func Modes() []Mode {
	return []Mode{ModeSmall, ModeBig, ModeFire}
}

// Valid reports whether m is one of the known tiers.
func (m Mode) Valid() bool {
	return m >= ModeSmall && int(m) < len(modeProfiles)
}

// Profile returns the fixed profile of m.
func (m Mode) Profile() (ModeProfile, bool) {
	if !m.Valid() {
		return ModeProfile{}, false
	}
	return modeProfiles[m], true
}

func (m Mode) String() string {
	if p, ok := m.Profile(); ok {
		return p.Tag
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a tier tag, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(strings.TrimSpace(s), modeProfiles[m].Tag) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ModeForHealth returns the tier whose profile carries health h.
func ModeForHealth(h int) (Mode, bool) {
	for _, m := range Modes() {
		if modeProfiles[m].Health == h {
			return m, true
		}
	}
	return 0, false
}

// UnmarshalText lets yaml decode a tier tag straight into a Mode.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SetMode switches the character to a new tier. An unknown tier is logged and
// rejected without touching any state.
func (c *Character) SetMode(m Mode) error {
	profile, ok := m.Profile()
	if !ok {
		c.logger.Printf("character: unexpected mode %d", int(m))
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}

	c.applySprites(m)

	// a grounded character grows or shrinks from its feet
	if c.grounded {
		p := c.anim.Position()
		p.Y += (profile.BoxHeight - c.box.Height) / 2
		c.SetPosition(p)
	}
	c.box.Width = profile.BoxWidth
	c.box.Height = profile.BoxHeight

	prev := c.mode
	c.mode = m
	c.health = profile.Health
	c.canFire = profile.CanFire

	if prev != m {
		c.events.Push(Event{Kind: EventModeChanged, Mode: m})
	}
	return nil
}

// Hurt downgrades the character one tier, or kills it in the smallest tier.
// Call it exactly once per damage event; it performs the health decrement
// itself through the tier profile.
func (c *Character) Hurt() {
	if c.dead {
		return
	}
	switch c.health {
	case 3:
		_ = c.SetMode(ModeBig)
	case 2:
		_ = c.SetMode(ModeSmall)
	case 1:
		c.dead = true
		c.velocity.X = 0
		c.events.Push(Event{Kind: EventDied, Mode: c.mode})
		return
	default:
		c.logger.Printf("character: hurt with unexpected health %d", c.health)
		return
	}
	c.events.Push(Event{Kind: EventHurt, Mode: c.mode})
}

func (c *Character) applySprites(m Mode) {
	set, ok := c.sprites[m]
	if !ok {
		c.logger.Printf("character: no sprite set for mode %s, keeping current sprites", m)
		return
	}
	if set.Default != "" {
		c.anim.SetDefaultSprite(set.Default)
	} else {
		c.logger.Printf("character: mode %s has no default sprite", m)
	}
	for _, slot := range CharacterSlots() {
		frames, ok := set.Clips[slot]
		if !ok || len(frames) == 0 {
			c.logger.Printf("character: mode %s has no %s frames, keeping current ones", m, slot)
			continue
		}
		c.anim.AddAnimation(slot, frames)
	}
}
