package obj

import "github.com/milk9111/backtrack/common"

// Camera tracks a world position with smoothing and clamps the view to the
// level bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		screenW: float64(screenW),
		screenH: float64(screenH),
		smooth:  0.15,
	}
}

// SetWorldBounds sets the world pixel dimensions used to clamp the view.
func (c *Camera) SetWorldBounds(w, h float64) {
	if c == nil {
		return
	}
	c.worldW = w
	c.worldH = h
}

// Follow moves the camera toward the target world position.
func (c *Camera) Follow(x, y float64) {
	if c == nil {
		return
	}
	c.PosX = common.Lerp(c.PosX, x, c.smooth)
	c.PosY = common.Lerp(c.PosY, y, c.smooth)
}

// Snap centers the camera on the target immediately, used right after a map
// switch so the view doesn't sweep across the new map.
func (c *Camera) Snap(x, y float64) {
	if c == nil {
		return
	}
	c.PosX = x
	c.PosY = y
}

// ViewTopLeft returns the top-left of the visible world rectangle.
func (c *Camera) ViewTopLeft() (float64, float64) {
	if c == nil {
		return 0, 0
	}
	x := c.PosX - c.screenW/2
	y := c.PosY - c.screenH/2
	if c.worldW > c.screenW {
		x = common.Clamp(x, 0, c.worldW-c.screenW)
	} else {
		x = 0
	}
	if c.worldH > c.screenH {
		y = common.Clamp(y, 0, c.worldH-c.screenH)
	} else {
		y = 0
	}
	return x, y
}
