package prefabs

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/obj"
	"gopkg.in/yaml.v3"
)

const (
	CharacterFile = "character.yaml"
	FireballFile  = "fireball.yaml"
	CameraFile    = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec is the tuning and sprite layout of the playable character.
type CharacterSpec struct {
	Name                string                   `yaml:"name"`
	Mode                obj.Mode                 `yaml:"mode"`
	MoveSpeed           float64                  `yaml:"move_speed"`
	JumpPower           float64                  `yaml:"jump_power"`
	Gravity             float64                  `yaml:"gravity"`
	FireCooldownFrames  int                      `yaml:"fire_cooldown_frames"`
	HurtInvulnerability float64                  `yaml:"hurt_invulnerability"`
	ZIndex              float64                  `yaml:"z_index"`
	Sprites             map[string]SpriteSetSpec `yaml:"sprites"`
}

// SpriteSetSpec overrides the sprites of one tier. Paths are relative to the
// resource directory.
type SpriteSetSpec struct {
	Default string              `yaml:"default"`
	Clips   map[string][]string `yaml:"clips"`
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](CharacterFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning returns the values that may be reapplied while the game runs.
func (s *CharacterSpec) Tuning() obj.Tuning {
	gravity := s.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}
	return obj.Tuning{
		JumpPower:          s.JumpPower,
		MoveSpeed:          s.MoveSpeed,
		Gravity:            gravity,
		FireCooldownFrames: s.FireCooldownFrames,
	}
}

// SpriteTable merges the overrides onto the default layout under resourceDir.
func (s *CharacterSpec) SpriteTable(resourceDir string) (obj.SpriteTable, error) {
	override := obj.SpriteTable{}
	for tag, set := range s.Sprites {
		m, err := obj.ParseMode(tag)
		if err != nil {
			return nil, fmt.Errorf("prefabs: sprites: %w", err)
		}
		out := obj.SpriteSet{Clips: map[obj.AnimSlot][]string{}}
		if set.Default != "" {
			out.Default = resourcePath(resourceDir, set.Default)
		}
		for name, frames := range set.Clips {
			slot, err := obj.ParseAnimSlot(name)
			if err != nil {
				return nil, fmt.Errorf("prefabs: sprites %s: %w", tag, err)
			}
			paths := make([]string, 0, len(frames))
			for _, f := range frames {
				paths = append(paths, resourcePath(resourceDir, f))
			}
			out.Clips[slot] = paths
		}
		override[m] = out
	}
	return obj.DefaultSpriteTable(resourceDir).Merge(override), nil
}

// ToConfig builds the character configuration placed at spawn.
func (s *CharacterSpec) ToConfig(resourceDir string, spawn common.Vec2) (obj.CharacterConfig, error) {
	if !s.Mode.Valid() {
		return obj.CharacterConfig{}, fmt.Errorf("prefabs: %s: %w: %d", CharacterFile, obj.ErrInvalidMode, int(s.Mode))
	}
	sprites, err := s.SpriteTable(resourceDir)
	if err != nil {
		return obj.CharacterConfig{}, err
	}

	t := s.Tuning()
	return obj.CharacterConfig{
		Position:           spawn,
		Mode:               s.Mode,
		JumpPower:          t.JumpPower,
		MoveSpeed:          t.MoveSpeed,
		Gravity:            t.Gravity,
		FireCooldownFrames: t.FireCooldownFrames,
		ZIndex:             s.ZIndex,
		Sprites:            sprites,
	}, nil
}

// LoadCharacterConfig loads character.yaml and fireball.yaml and builds the
// configuration of a character placed at spawn.
func LoadCharacterConfig(resourceDir string, spawn common.Vec2) (obj.CharacterConfig, *CharacterSpec, error) {
	spec, err := LoadCharacterSpec()
	if err != nil {
		return obj.CharacterConfig{}, nil, err
	}
	cfg, err := spec.ToConfig(resourceDir, spawn)
	if err != nil {
		return obj.CharacterConfig{}, nil, err
	}
	fireSpec, err := LoadFireballSpec()
	if err != nil {
		return obj.CharacterConfig{}, nil, err
	}
	cfg.Fireball = fireSpec.ToConfig(resourceDir)
	return cfg, spec, nil
}

// FireballSpec describes the projectile. Empty fields keep the defaults.
type FireballSpec struct {
	Speed           float64  `yaml:"speed"`
	Size            float64  `yaml:"size"`
	SpawnOffset     float64  `yaml:"spawn_offset"`
	Lifetime        float64  `yaml:"lifetime"`
	FrameIntervalMs int      `yaml:"frame_interval_ms"`
	ZIndex          float64  `yaml:"z_index"`
	Default         string   `yaml:"default"`
	Roll            []string `yaml:"roll"`
	Explode         []string `yaml:"explode"`
}

func LoadFireballSpec() (*FireballSpec, error) {
	spec, err := LoadSpec[FireballSpec](FireballFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *FireballSpec) ToConfig(resourceDir string) obj.FireballConfig {
	cfg := obj.DefaultFireballConfig(resourceDir)
	if s.Speed > 0 {
		cfg.Speed = s.Speed
	}
	if s.Size > 0 {
		cfg.Size = s.Size
	}
	if s.SpawnOffset > 0 {
		cfg.SpawnOffset = s.SpawnOffset
	}
	if s.Lifetime > 0 {
		cfg.Lifetime = s.Lifetime
	}
	if s.FrameIntervalMs > 0 {
		cfg.FrameIntervalMs = s.FrameIntervalMs
	}
	cfg.ZIndex = s.ZIndex
	if s.Default != "" {
		cfg.Default = resourcePath(resourceDir, s.Default)
	}
	if len(s.Roll) > 0 {
		cfg.Roll = resourcePaths(resourceDir, s.Roll)
	}
	if len(s.Explode) > 0 {
		cfg.Explode = resourcePaths(resourceDir, s.Explode)
	}
	return cfg
}

type CameraSpec struct {
	Zoom       float64    `yaml:"zoom"`
	Smoothness float64    `yaml:"smoothness"`
	Background *YAMLColor `yaml:"background"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func resourcePath(dir, p string) string {
	if dir == "" || filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(filepath.Join(dir, p))
}

func resourcePaths(dir string, ps []string) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, resourcePath(dir, p))
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
