package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InteractKey is the lowercase token passed to interactable sensors when the
// interact key fires.
const InteractKey = "e"

// Input holds the polled input state for one frame.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// InteractPressed is true on the frame the interact key (E) is pressed.
	InteractPressed bool
	// PausePressed is true on the frame the pause key is pressed.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	i.MoveX = moveX

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	i.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW)
	i.InteractPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// PressedKey returns the interact key token if it fired this frame, or "".
func (i *Input) PressedKey() string {
	if i == nil || !i.InteractPressed {
		return ""
	}
	return InteractKey
}
