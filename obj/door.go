package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/backtrack/common"
	"github.com/milk9111/backtrack/physics"
)

// Door is the drawable side of a solid door shape owned by the physics
// space. Open/closed state lives in the space; scripts flip it.
type Door struct {
	Name   string
	Bounds common.Rect

	col color.Color
	img *ebiten.Image
}

// Draw renders the door while it is closed.
func (d *Door) Draw(screen *ebiten.Image, space *physics.Space, camX, camY float64) {
	if d == nil || space == nil || space.DoorOpen(d.Name) {
		return
	}
	if d.img == nil {
		d.img = ebiten.NewImage(int(d.Bounds.W), int(d.Bounds.H))
		d.img.Fill(d.col)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(d.Bounds.X-camX, d.Bounds.Y-camY)
	screen.DrawImage(d.img, op)
}
