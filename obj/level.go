package obj

import (
	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/levels"
)

// Level is the static geometry the character moves through, in y-up world
// pixels with the origin at the bottom-left corner of the map.
type Level struct {
	Width  float64
	Height float64
	Spawn  common.Vec2
	Blocks []Block
}

// NewLevel converts a tile map into world blocks. Solid tiles on every physics
// layer are merged into as few rectangles as possible; hazard tiles stay one
// block each.
func NewLevel(src *levels.Level) *Level {
	lvl := &Level{
		Width:  float64(src.Width * common.TileSize),
		Height: float64(src.Height * common.TileSize),
	}
	for _, layer := range src.PhysicsLayers() {
		lvl.Blocks = append(lvl.Blocks, MergeTiles(src.Width, src.Height, layer)...)
	}

	x, y, ok := src.Spawn()
	if !ok {
		x, y = 1, src.Height/2
	}
	lvl.Spawn = tileCenter(src.Height, x, y, 1, 1)
	return lvl
}

// MergeTiles greedily expands solid tiles into rectangles, width first then
// height. Row 0 of layer is the top row of the map.
func MergeTiles(width, height int, layer []int) []Block {
	var blocks []Block
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			processed[idx] = true

			switch layer[idx] {
			case levels.TileEmpty:
				continue
			case levels.TileHazard:
				b := tileBlock(height, x, y, 1, 1)
				b.Hazard = true
				blocks = append(blocks, b)
				continue
			}

			solid := func(i int) bool {
				return !processed[i] && layer[i] != levels.TileEmpty && layer[i] != levels.TileHazard
			}

			w := 1
			for x+w < width && solid(y*width+x+w) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid((y+h)*width + xi) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
			blocks = append(blocks, tileBlock(height, x, y, w, h))
		}
	}
	return blocks
}

func tileBlock(mapHeight, x, y, w, h int) Block {
	return Block{
		Position: tileCenter(mapHeight, x, y, w, h),
		Width:    float64(w * common.TileSize),
		Height:   float64(h * common.TileSize),
	}
}

// tileCenter flips the tile row so y grows upward.
func tileCenter(mapHeight, x, y, w, h int) common.Vec2 {
	ts := float64(common.TileSize)
	return common.Vec2{
		X: (float64(x) + float64(w)/2) * ts,
		Y: (float64(mapHeight-y) - float64(h)/2) * ts,
	}
}
