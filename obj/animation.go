package obj

import (
	"fmt"
	"strings"

	"github.com/milk9111/plumber/common"
)

// AnimSlot identifies one named animation clip on an AnimationObject.
type AnimSlot int

// AnimNone means no clip is active and the default sprite is shown.
const AnimNone AnimSlot = -1

const (
	AnimRun AnimSlot = iota
	AnimJump
	AnimDeath
	AnimRoll
	AnimExplode
)

func (s AnimSlot) String() string {
	switch s {
	case AnimNone:
		return "none"
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	case AnimDeath:
		return "death"
	case AnimRoll:
		return "roll"
	case AnimExplode:
		return "explode"
	default:
		return "unknown"
	}
}

// ParseAnimSlot maps a clip name such as "run" to its slot.
func ParseAnimSlot(name string) (AnimSlot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range []AnimSlot{AnimRun, AnimJump, AnimDeath, AnimRoll, AnimExplode} {
		if s.String() == name {
			return s, nil
		}
	}
	return AnimNone, fmt.Errorf("animation: unknown clip %q", name)
}

// AnimationObject is the render handle of a character or projectile: it owns
// the world position, the mirroring scale, the default sprite path and the
// frame paths of every registered clip.
type AnimationObject struct {
	position      common.Vec2
	scale         common.Vec2
	defaultSprite string
	clips         map[AnimSlot][]string
	zIndex        float64

	current  AnimSlot
	frame    int
	elapsed  float64
	interval float64
	looping  bool
	playing  bool
}

// NewAnimationObject creates a handle showing defaultSprite at pos.
func NewAnimationObject(defaultSprite string, pos common.Vec2, zIndex float64) *AnimationObject {
	return &AnimationObject{
		position:      pos,
		scale:         common.Vec2{X: 1, Y: 1},
		defaultSprite: defaultSprite,
		clips:         make(map[AnimSlot][]string),
		zIndex:        zIndex,
		current:       AnimNone,
	}
}

func (a *AnimationObject) Position() common.Vec2     { return a.position }
func (a *AnimationObject) SetPosition(p common.Vec2) { a.position = p }
func (a *AnimationObject) Scale() common.Vec2        { return a.scale }
func (a *AnimationObject) SetScale(s common.Vec2)    { a.scale = s }
func (a *AnimationObject) ZIndex() float64           { return a.zIndex }
func (a *AnimationObject) DefaultSprite() string     { return a.defaultSprite }

func (a *AnimationObject) SetDefaultSprite(path string) { a.defaultSprite = path }

// AddAnimation registers (or replaces) the frame paths of a clip.
func (a *AnimationObject) AddAnimation(slot AnimSlot, frames []string) {
	a.clips[slot] = append([]string(nil), frames...)
}

// AnimationPaths returns a copy of the frame paths registered for slot.
func (a *AnimationObject) AnimationPaths(slot AnimSlot) []string {
	frames, ok := a.clips[slot]
	if !ok {
		return nil
	}
	return append([]string(nil), frames...)
}

// Slots returns every registered clip slot.
func (a *AnimationObject) Slots() []AnimSlot {
	slots := make([]AnimSlot, 0, len(a.clips))
	for s := range a.clips {
		slots = append(slots, s)
	}
	return slots
}

// SetAnimation switches to slot and restarts it at the first frame.
// intervalMs is the display time of each frame.
func (a *AnimationObject) SetAnimation(slot AnimSlot, intervalMs int) {
	if intervalMs <= 0 {
		intervalMs = 25
	}
	a.current = slot
	a.frame = 0
	a.elapsed = 0
	a.interval = float64(intervalMs) / 1000.0
}

func (a *AnimationObject) SetLooping(loop bool) { a.looping = loop }
func (a *AnimationObject) PlayAnimation()       { a.playing = true }
func (a *AnimationObject) IsPlaying() bool      { return a.playing }

// CurrentAnimation returns the active slot, AnimNone while idle.
func (a *AnimationObject) CurrentAnimation() AnimSlot { return a.current }

// ShowDefault clears the active clip so the default sprite is drawn.
func (a *AnimationObject) ShowDefault() {
	a.current = AnimNone
	a.frame = 0
	a.elapsed = 0
	a.playing = false
}

// Frame returns the index of the displayed frame within the active clip.
func (a *AnimationObject) Frame() int { return a.frame }

// Finished reports whether a non-looping clip reached its last frame.
func (a *AnimationObject) Finished() bool {
	if a.current == AnimNone || a.looping {
		return false
	}
	return !a.playing && a.frame == len(a.clips[a.current])-1
}

// Update advances the active clip by dt seconds.
func (a *AnimationObject) Update(dt float64) {
	if !a.playing || a.current == AnimNone || a.interval <= 0 {
		return
	}
	frames := a.clips[a.current]
	if len(frames) <= 1 {
		if !a.looping {
			a.playing = false
		}
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.interval {
		a.elapsed -= a.interval
		a.frame++
		if a.frame >= len(frames) {
			if a.looping {
				a.frame = 0
			} else {
				a.frame = len(frames) - 1
				a.playing = false
				a.elapsed = 0
				return
			}
		}
	}
}

// CurrentSprite returns the path of the image that should be drawn now.
func (a *AnimationObject) CurrentSprite() string {
	if a.current == AnimNone {
		return a.defaultSprite
	}
	frames := a.clips[a.current]
	if len(frames) == 0 {
		return a.defaultSprite
	}
	if a.frame < 0 || a.frame >= len(frames) {
		return frames[0]
	}
	return frames[a.frame]
}
