package common

// Rect is an axis-aligned box stored by its center.
type Rect struct {
	Center        Vec2
	Width, Height float64
}

func (r Rect) Left() float64   { return r.Center.X - r.Width/2 }
func (r Rect) Right() float64  { return r.Center.X + r.Width/2 }
func (r Rect) Bottom() float64 { return r.Center.Y - r.Height/2 }
func (r Rect) Top() float64    { return r.Center.Y + r.Height/2 }

func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() &&
		r.Right() > other.Left() &&
		r.Bottom() < other.Top() &&
		r.Top() > other.Bottom()
}
