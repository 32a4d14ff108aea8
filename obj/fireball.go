package obj

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/plumber/common"
)

// FireballOwner tags who shot a fireball.
type FireballOwner int

const (
	OwnerCharacter FireballOwner = iota
)

func (o FireballOwner) String() string {
	if o == OwnerCharacter {
		return "character"
	}
	return fmt.Sprintf("FireballOwner(%d)", int(o))
}

// FireballConfig describes the projectile a character spawns.
type FireballConfig struct {
	Speed           float64
	Size            float64
	SpawnOffset     float64
	Lifetime        float64
	FrameIntervalMs int
	ZIndex          float64
	Default         string
	Roll            []string
	Explode         []string
}

// DefaultFireballConfig builds the conventional fireball assets under
// <resourceDir>/Sprites/Mario/Fireball.
func DefaultFireballConfig(resourceDir string) FireballConfig {
	dir := filepath.ToSlash(filepath.Join(resourceDir, "Sprites", "Mario", "Fireball"))
	return FireballConfig{
		Speed:           200,
		Size:            24,
		SpawnOffset:     50,
		Lifetime:        3,
		FrameIntervalMs: 50,
		Default:         dir + "/fireball1.png",
		Roll:            numberedFrames(dir+"/fireball", 4),
		Explode:         numberedFrames(dir+"/fireball_explode", 3),
	}
}

func (f FireballConfig) withDefaults() FireballConfig {
	def := DefaultFireballConfig("")
	if f.Speed == 0 {
		f.Speed = def.Speed
	}
	if f.Size == 0 {
		f.Size = def.Size
	}
	if f.SpawnOffset == 0 {
		f.SpawnOffset = def.SpawnOffset
	}
	if f.FrameIntervalMs == 0 {
		f.FrameIntervalMs = def.FrameIntervalMs
	}
	if f.Default == "" {
		f.Default = def.Default
	}
	if len(f.Roll) == 0 {
		f.Roll = def.Roll
	}
	if len(f.Explode) == 0 {
		f.Explode = def.Explode
	}
	return f
}

// Fireball is a short-lived projectile. Once drained from its character it
// belongs to whoever received it.
type Fireball struct {
	Owner FireballOwner

	anim      *AnimationObject
	box       CollisionBox
	speed     float64
	direction float64
	lifetime  float64
	interval  int

	age       float64
	exploding bool
	destroyed bool
}

// NewFireball creates a rolling fireball at pos moving toward facing.
func NewFireball(owner FireballOwner, cfg FireballConfig, pos common.Vec2, facingRight bool) *Fireball {
	cfg = cfg.withDefaults()
	dir := 1.0
	if !facingRight {
		dir = -1.0
	}
	f := &Fireball{
		Owner:     owner,
		anim:      NewAnimationObject(cfg.Default, pos, cfg.ZIndex),
		speed:     cfg.Speed,
		direction: dir,
		lifetime:  cfg.Lifetime,
		interval:  cfg.FrameIntervalMs,
		box: CollisionBox{
			Position: pos,
			Width:    cfg.Size,
			Height:   cfg.Size,
		},
	}
	f.anim.AddAnimation(AnimRoll, cfg.Roll)
	f.anim.AddAnimation(AnimExplode, cfg.Explode)
	f.anim.SetScale(common.Vec2{X: dir, Y: 1})
	f.anim.SetAnimation(AnimRoll, f.interval)
	f.anim.SetLooping(true)
	f.anim.PlayAnimation()
	return f
}

func (f *Fireball) AnimationObject() *AnimationObject { return f.anim }
func (f *Fireball) Box() *CollisionBox                { return &f.box }
func (f *Fireball) Position() common.Vec2             { return f.anim.Position() }
func (f *Fireball) Speed() float64                    { return f.speed }
func (f *Fireball) Direction() float64                { return f.direction }
func (f *Fireball) Exploding() bool                   { return f.exploding }
func (f *Fireball) Destroyed() bool                   { return f.destroyed }
func (f *Fireball) MarkDestroyed()                    { f.destroyed = true }

// Update rolls the fireball forward until it touches something, then plays
// the explode clip and marks itself destroyed when the clip ends.
func (f *Fireball) Update(dt float64) {
	if f.destroyed {
		return
	}
	f.age += dt

	if !f.exploding {
		if f.box.State != ContactNone {
			f.explode()
		} else {
			pos := f.anim.Position()
			pos.X += f.direction * f.speed * dt
			f.anim.SetPosition(pos)
			f.box.Position = pos
		}
		if f.lifetime > 0 && f.age >= f.lifetime {
			f.destroyed = true
			return
		}
	}

	f.anim.Update(dt)
	if f.exploding && f.anim.Finished() {
		f.destroyed = true
	}
}

func (f *Fireball) explode() {
	f.exploding = true
	if len(f.anim.AnimationPaths(AnimExplode)) == 0 {
		f.destroyed = true
		return
	}
	f.anim.SetAnimation(AnimExplode, f.interval)
	f.anim.SetLooping(false)
	f.anim.PlayAnimation()
}

// TryFire spawns a fireball in front of the character when the current mode
// allows it. The fireball waits in a pending buffer until DrainFireballs.
func (c *Character) TryFire() {
	if !c.canFire || c.cooldownLeft > 0 {
		return
	}

	pos := c.anim.Position()
	if c.facingRight {
		pos.X += c.fireCfg.SpawnOffset
	} else {
		pos.X -= c.fireCfg.SpawnOffset
	}

	c.fireballs = append(c.fireballs, NewFireball(OwnerCharacter, c.fireCfg, pos, c.facingRight))
	c.cooldownLeft = c.fireCooldown
	c.events.Push(Event{Kind: EventFired, Mode: c.mode})
}

// DrainFireballs hands every pending fireball to the caller and forgets them.
func (c *Character) DrainFireballs() []*Fireball {
	out := c.fireballs
	c.fireballs = nil
	return out
}

// PendingFireballs reports how many fireballs wait for DrainFireballs.
func (c *Character) PendingFireballs() int { return len(c.fireballs) }

func (c *Character) tickFireCooldown() {
	if c.cooldownLeft > 0 {
		c.cooldownLeft--
	}
}

// SetFireballConfig changes the projectile spawned by later TryFire calls.
func (c *Character) SetFireballConfig(cfg FireballConfig) {
	c.fireCfg = cfg.withDefaults()
}
