package script

import (
	"io"
	"log"
	"testing"

	"github.com/milk9111/plumber/obj"
	"github.com/milk9111/plumber/prefabs"
)

func quiet(in *Input) *Input {
	in.SetLogger(log.New(io.Discard, "", 0))
	return in
}

func TestPollReadsGlobals(t *testing.T) {
	src := []byte(`
right = frame % 2 == 0
jump = dt > 0.01
fire_mode = frame == 3
`)
	in, err := New("test", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	quiet(in)

	cases := []struct {
		frame int
		dt    float64
		want  map[obj.Key]bool
	}{
		{2, 0.02, map[obj.Key]bool{obj.KeyRight: true, obj.KeyJump: true}},
		{3, 0.005, map[obj.Key]bool{obj.KeyModeFire: true}},
	}

	for _, c := range cases {
		if err := in.Poll(c.frame, c.dt); err != nil {
			t.Fatalf("frame %d: %v", c.frame, err)
		}
		for k := range globals {
			if in.IsKeyPressed(k) != c.want[k] {
				t.Fatalf("frame %d: expected %s=%v", c.frame, k, c.want[k])
			}
		}
	}
	if in.ExitRequested() {
		t.Fatalf("scripts never request exit directly")
	}
}

func TestPollRuntimeErrorReleasesKeys(t *testing.T) {
	in, err := New("div", []byte(`
right = true
x := 10 / (frame - 2)
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	quiet(in)

	if err := in.Poll(1, 0.02); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if !in.IsKeyPressed(obj.KeyRight) {
		t.Fatalf("expected right held on frame 1")
	}

	if err := in.Poll(2, 0.02); err == nil {
		t.Fatalf("expected a division error on frame 2")
	}
	if in.IsKeyPressed(obj.KeyRight) {
		t.Fatalf("keys should be released after a runtime error")
	}

	if err := in.Poll(3, 0.02); err != nil {
		t.Fatalf("frame 3 should recover: %v", err)
	}
	if !in.IsKeyPressed(obj.KeyRight) {
		t.Fatalf("expected right held again on frame 3")
	}
}

func TestNewCompileError(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `right = `},
		{"unknown_variable", `right = not_a_global`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.name, []byte(c.src)); err == nil {
				t.Fatalf("expected a compile error")
			}
		})
	}
}

func TestDemoScriptCompiles(t *testing.T) {
	src, err := prefabs.LoadScript("demo.tengo")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	in, err := New("demo.tengo", src)
	if err != nil {
		t.Fatalf("compile demo: %v", err)
	}
	quiet(in)

	if err := in.Poll(90, 0.016); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !in.IsKeyPressed(obj.KeyModeFire) || !in.IsKeyPressed(obj.KeyRight) {
		t.Fatalf("demo should switch to fire mode while running right on frame 90")
	}
}
