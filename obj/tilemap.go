package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/backtrack/common"
	"github.com/milk9111/backtrack/maps"
)

// tile fill colors cycled per tile layer; physics layers get the first slot
var layerColors = []color.NRGBA{
	{R: 0x5a, G: 0x5a, B: 0x66, A: 0xff},
	{R: 0x3a, G: 0x3a, B: 0x46, A: 0xff},
	{R: 0x2c, G: 0x2c, B: 0x36, A: 0xff},
}

// Tilemap renders a map's tile layers as flat-colored tiles.
type Tilemap struct {
	m    *maps.Map
	imgs []*ebiten.Image
}

func NewTilemap(m *maps.Map) *Tilemap {
	return &Tilemap{m: m}
}

// Draw renders every tile layer, bottom first, offset by the camera.
func (t *Tilemap) Draw(screen *ebiten.Image, camX, camY float64) {
	if t == nil || t.m == nil {
		return
	}
	if t.imgs == nil {
		t.buildImages()
	}

	layerIdx := 0
	for _, layer := range t.m.Layers {
		if len(layer.Tiles) != t.m.Width*t.m.Height {
			continue
		}
		img := t.imgs[layerIdx%len(t.imgs)]
		layerIdx++
		for y := 0; y < t.m.Height; y++ {
			for x := 0; x < t.m.Width; x++ {
				if layer.Tiles[y*t.m.Width+x] == 0 {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(x*common.TileSize)-camX, float64(y*common.TileSize)-camY)
				screen.DrawImage(img, op)
			}
		}
	}
}

func (t *Tilemap) buildImages() {
	for _, c := range layerColors {
		img := ebiten.NewImage(common.TileSize, common.TileSize)
		img.Fill(c)
		t.imgs = append(t.imgs, img)
	}
}
