package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/plumber/obj"
)

// globals maps every logical key to the script global holding its state.
var globals = map[obj.Key]string{
	obj.KeyLeft:      "left",
	obj.KeyRight:     "right",
	obj.KeyJump:      "jump",
	obj.KeyFire:      "fire",
	obj.KeyModeSmall: "small",
	obj.KeyModeBig:   "big",
	obj.KeyModeFire:  "fire_mode",
	obj.KeyQuit:      "quit",
}

// Input drives the character from a tengo script. The script runs once per
// Poll with the globals frame and dt set, and leaves the key states in the
// bool globals left, right, jump, fire, small, big, fire_mode and quit.
type Input struct {
	name     string
	compiled *tengo.Compiled
	held     map[obj.Key]bool
	logger   *log.Logger
	failed   bool
}

// New compiles src. name is only used in log and error messages.
func New(name string, src []byte) (*Input, error) {
	s := tengo.NewScript(src)
	_ = s.Add("frame", 0)
	_ = s.Add("dt", 0.0)
	for _, g := range globals {
		_ = s.Add(g, false)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Input{
		name:     name,
		compiled: compiled,
		held:     make(map[obj.Key]bool, len(globals)),
		logger:   log.Default(),
	}, nil
}

func (in *Input) SetLogger(l *log.Logger) {
	if l != nil {
		in.logger = l
	}
}

// Poll runs the script for frame and samples the key globals. On a runtime
// error every key reads as released and the error is returned.
func (in *Input) Poll(frame int, dt float64) error {
	if err := in.compiled.Set("frame", frame); err != nil {
		return err
	}
	if err := in.compiled.Set("dt", dt); err != nil {
		return err
	}
	if err := in.compiled.Run(); err != nil {
		clear(in.held)
		if !in.failed {
			in.logger.Printf("script: %s frame %d: %v", in.name, frame, err)
		}
		in.failed = true
		return fmt.Errorf("script: run %s: %w", in.name, err)
	}
	in.failed = false

	for key, g := range globals {
		in.held[key] = in.compiled.IsDefined(g) && in.compiled.Get(g).Bool()
	}
	return nil
}

func (in *Input) IsKeyPressed(k obj.Key) bool {
	return in.held[k]
}

// ExitRequested is always false; scripts quit through the quit global.
func (in *Input) ExitRequested() bool { return false }
