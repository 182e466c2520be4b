package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Fade manages a fade-to-black, map load, fade-from-black sequence around a
// map switch.
type Fade struct {
	Active   bool
	Phase    int // 1: fade-out, 2: loading, 3: fade-in
	Frames   int
	Duration int
	overlay  *ebiten.Image
	// OnSwitch is called when the fade-out completes and the map should be
	// swapped.
	OnSwitch func()
}

func NewFade() *Fade {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.Black)
	return &Fade{Duration: 20, overlay: img}
}

// Start begins a fade sequence; no-op while one is already running.
func (f *Fade) Start(onSwitch func()) {
	if f == nil || f.Active {
		return
	}
	f.Active = true
	f.Phase = 1
	f.Frames = 0
	f.OnSwitch = onSwitch
}

// Update advances the sequence and invokes OnSwitch at the midpoint. Returns
// true while the fade is active, telling the caller the world is mid-switch.
func (f *Fade) Update() bool {
	if f == nil || !f.Active {
		return false
	}
	f.Frames++
	switch f.Phase {
	case 1:
		if f.Frames >= f.Duration {
			if f.OnSwitch != nil {
				f.OnSwitch()
				f.OnSwitch = nil
			}
			f.Phase = 3
			f.Frames = 0
		}
	case 3:
		if f.Frames >= f.Duration {
			f.Active = false
			f.Phase = 0
			f.Frames = 0
		}
	}
	return true
}

// Draw renders the fade overlay.
func (f *Fade) Draw(screen *ebiten.Image) {
	if f == nil || !f.Active {
		return
	}
	var alpha float64
	switch f.Phase {
	case 1:
		alpha = float64(f.Frames) / float64(f.Duration)
		if alpha > 1 {
			alpha = 1
		}
	case 2:
		alpha = 1
	case 3:
		alpha = 1 - float64(f.Frames)/float64(f.Duration)
		if alpha < 0 {
			alpha = 0
		}
	}
	if alpha <= 0 {
		return
	}

	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(f.overlay, op)
}
