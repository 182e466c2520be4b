package common

const (
	// TileSize is the edge length of one map tile in world pixels.
	TileSize = 32
	// Gravity is the downward acceleration applied to dynamic bodies.
	Gravity = 600.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
