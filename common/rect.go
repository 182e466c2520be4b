package common

// Rect is an axis-aligned rectangle in world pixels, Y down.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
