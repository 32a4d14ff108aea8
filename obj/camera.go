package obj

import (
	"math"

	"github.com/milk9111/plumber/common"
)

// Camera tracks the world point shown at the center of the screen. World
// coordinates are y-up; screen coordinates are y-down.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. 0 snaps.
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and initial zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

// Position returns the world point at the center of the view.
func (c *Camera) Position() common.Vec2 {
	return common.Vec2{X: c.PosX, Y: c.PosY}
}

func (c *Camera) viewSize() (float64, float64) {
	return float64(c.screenW) / c.zoom, float64(c.screenH) / c.zoom
}

// Follow moves the camera horizontally toward target. The vertical position
// only changes through clamping.
func (c *Camera) Follow(target common.Vec2) {
	if c.smooth <= 0 {
		c.PosX = target.X
	} else {
		c.PosX += (target.X - c.PosX) * c.smooth
	}
	c.clamp()
}

// SnapTo places the camera center immediately, e.g. after a level load.
func (c *Camera) SnapTo(p common.Vec2) {
	c.PosX = p.X
	c.PosY = p.Y
	c.clamp()
}

func (c *Camera) clamp() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	viewW, viewH := c.viewSize()
	c.PosX = clampAxis(c.PosX, viewW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, viewH/2, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		// world smaller than view: center on world
		return world / 2
	}
	return common.Clamp(pos, half, world-half)
}

// ViewTopLeft returns the world-space top-left corner of the current view.
func (c *Camera) ViewTopLeft() common.Vec2 {
	viewW, viewH := c.viewSize()
	return common.Vec2{X: c.PosX - viewW/2, Y: c.PosY + viewH/2}
}

// WorldToScreen converts a y-up world point to y-down screen pixels.
func (c *Camera) WorldToScreen(p common.Vec2) (float64, float64) {
	tl := c.ViewTopLeft()
	return (p.X - tl.X) * c.zoom, (tl.Y - p.Y) * c.zoom
}
