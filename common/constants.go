package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TileSize = 48

	// MaxDeltaTime is the largest integration step in seconds a single frame may use.
	MaxDeltaTime = 0.02

	// Gravity is a y-up world acceleration in pixels/s².
	Gravity = -2400.0
)
