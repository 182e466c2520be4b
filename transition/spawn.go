package transition

import "github.com/milk9111/backtrack/common"

// SpawnGap is how far outside the destination rectangle the player is placed,
// beyond their own half extent.
const SpawnGap = 2.0

// SpawnPosition computes where the player appears next to the destination
// rectangle, based on which side of the source rectangle they entered from.
//
// The source rectangle's own aspect decides the axis: taller than wide means
// the doorway is entered from the left or right; wider than (or as wide as)
// tall means it is entered from above or below. Y is down.
func SpawnPosition(src, dst common.Rect, px, py, halfW, halfH float64) (float64, float64) {
	if src.H > src.W {
		return spawnHorizontal(src, dst, px, py, halfW)
	}
	return spawnVertical(src, dst, px, py, halfW, halfH)
}

func spawnHorizontal(src, dst common.Rect, px, py, halfW float64) (float64, float64) {
	var x float64
	if px > src.CenterX() {
		// entered from the right, keep traveling left-to-right mirrored:
		// appear just outside the destination's right edge
		x = dst.Right() + SpawnGap + halfW
	} else {
		x = dst.X - SpawnGap - halfW
	}
	// preserve the vertical offset from the source's bottom edge so stepping
	// down stairs across a doorway keeps the player's feet aligned
	y := dst.Bottom() + (py - src.Bottom())
	return x, y
}

func spawnVertical(src, dst common.Rect, px, py, halfW, halfH float64) (float64, float64) {
	var y float64
	if py > src.CenterY() {
		// entered from below
		y = dst.Bottom() + SpawnGap + halfH
	} else {
		y = dst.Y - SpawnGap - halfH
	}
	// preserve the horizontal offset from the source's left edge, but never
	// let a narrower destination spawn the player outside the rectangle
	off := px - src.X
	min := halfW + SpawnGap
	max := dst.W - halfW - SpawnGap
	if min > max {
		off = dst.W / 2
	} else {
		off = common.Clamp(off, min, max)
	}
	return dst.X + off, y
}
