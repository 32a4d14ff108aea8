package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile values of a physics layer.
const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity places something on the map in tile coordinates (row 0 is the top row).
type Entity struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Spawn returns the tile of the first "spawn" entity.
func (l *Level) Spawn() (x, y int, ok bool) {
	for _, e := range l.Entities {
		if e.Type == "spawn" {
			return e.X, e.Y, true
		}
	}
	return 0, 0, false
}

// PhysicsLayers returns every layer flagged as physics that has the right size.
func (l *Level) PhysicsLayers() [][]int {
	var out [][]int
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		if len(layer) != l.Width*l.Height {
			continue
		}
		out = append(out, layer)
	}
	return out
}

// Load reads a level from disk when the file exists and falls back to the
// embedded copy otherwise.
func Load(name string) (*Level, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: invalid dimensions %dx%d", lvl.Width, lvl.Height)
	}
	return &lvl, nil
}
