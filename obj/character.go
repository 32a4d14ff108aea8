package obj

import (
	"log"

	"github.com/milk9111/plumber/common"
)

const (
	// Ground and wall frames use the base multiplier; falling past the apex uses the fast one.
	gravityMultiplierBase = 1
	gravityMultiplierFall = 3

	// clipIntervalMs is the display time of each character animation frame.
	clipIntervalMs = 25
)

// CharacterConfig holds the starting stats of a character.
type CharacterConfig struct {
	Position           common.Vec2
	Mode               Mode
	JumpPower          float64
	MoveSpeed          float64
	Gravity            float64
	FireCooldownFrames int
	ZIndex             float64
	Sprites            SpriteTable
	Fireball           FireballConfig
}

// Tuning is the subset of CharacterConfig that may change while the game runs.
type Tuning struct {
	JumpPower          float64
	MoveSpeed          float64
	Gravity            float64
	FireCooldownFrames int
}

// Character is the playable avatar.
type Character struct {
	input  Input
	logger *log.Logger
	events EventQueue

	anim     *AnimationObject
	box      CollisionBox
	sprites  SpriteTable
	velocity common.Vec2

	facingRight bool
	grounded    bool
	standingOn  Block
	hazard      bool
	dead        bool
	running     bool
	jumping     bool

	jumpPower         float64
	moveSpeed         float64
	gravity           float64
	gravityMultiplier int

	mode    Mode
	health  int
	canFire bool

	fireCfg      FireballConfig
	fireCooldown int
	cooldownLeft int
	fireballs    []*Fireball
}

// NewCharacter creates a character in cfg.Mode at cfg.Position.
func NewCharacter(cfg CharacterConfig, input Input) *Character {
	sprites := cfg.Sprites
	if sprites == nil {
		sprites = DefaultSpriteTable("")
	}
	mode := cfg.Mode
	if !mode.Valid() {
		log.Printf("character: unexpected start mode %d, using %s", int(mode), ModeSmall)
		mode = ModeSmall
	}
	profile, _ := mode.Profile()
	set := sprites[mode]

	c := &Character{
		input:             input,
		logger:            log.Default(),
		anim:              NewAnimationObject(set.Default, cfg.Position, cfg.ZIndex),
		sprites:           sprites,
		facingRight:       true,
		jumpPower:         cfg.JumpPower,
		moveSpeed:         cfg.MoveSpeed,
		gravity:           cfg.Gravity,
		gravityMultiplier: gravityMultiplierBase,
		mode:              mode,
		health:            profile.Health,
		canFire:           profile.CanFire,
		fireCfg:           cfg.Fireball.withDefaults(),
		fireCooldown:      cfg.FireCooldownFrames,
	}
	c.box = CollisionBox{
		Position: cfg.Position,
		Width:    profile.BoxWidth,
		Height:   profile.BoxHeight,
	}
	for _, slot := range CharacterSlots() {
		if frames := set.Clips[slot]; len(frames) > 0 {
			c.anim.AddAnimation(slot, frames)
		}
	}
	return c
}

// SetLogger replaces the logger used for mode errors.
func (c *Character) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetInput swaps the input source.
func (c *Character) SetInput(in Input) { c.input = in }

// ApplyTuning updates movement constants without touching mode or position.
func (c *Character) ApplyTuning(t Tuning) {
	c.jumpPower = t.JumpPower
	c.moveSpeed = t.MoveSpeed
	c.gravity = t.Gravity
	c.fireCooldown = t.FireCooldownFrames
}

func (c *Character) Mode() Mode                        { return c.mode }
func (c *Character) Health() int                       { return c.health }
func (c *Character) CanFire() bool                     { return c.canFire }
func (c *Character) IsRunning() bool                   { return c.running }
func (c *Character) IsJumping() bool                   { return c.jumping }
func (c *Character) IsDead() bool                      { return c.dead }
func (c *Character) IsGrounded() bool                  { return c.grounded }
func (c *Character) IsFacingRight() bool               { return c.facingRight }
func (c *Character) Position() common.Vec2             { return c.anim.Position() }
func (c *Character) Velocity() common.Vec2             { return c.velocity }
func (c *Character) GravityMultiplier() int            { return c.gravityMultiplier }
func (c *Character) Box() *CollisionBox                { return &c.box }
func (c *Character) AnimationObject() *AnimationObject { return c.anim }
func (c *Character) StandingOn() Block                 { return c.standingOn }
func (c *Character) HazardContact() bool               { return c.hazard }
func (c *Character) SetVelocity(v common.Vec2)         { c.velocity = v }
func (c *Character) SetGrounded(grounded bool)         { c.grounded = grounded }
func (c *Character) SetStandingOn(b Block)             { c.standingOn = b }
func (c *Character) SetHazardContact(touching bool)    { c.hazard = touching }
func (c *Character) SetDead(dead bool)                 { c.dead = dead }
func (c *Character) DrainEvents() []Event              { return c.events.Drain() }
func (c *Character) SetFacingRight(right bool)         { c.facingRight = right }

// SetPosition teleports the character, moving both the render handle and the box.
func (c *Character) SetPosition(p common.Vec2) {
	c.anim.SetPosition(p)
	c.box.Position = p
}

// UpdateAnimation advances the active clip by dt seconds.
func (c *Character) UpdateAnimation(dt float64) {
	c.anim.Update(dt)
}
