package obj

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/physics"
	"github.com/milk9111/backtrack/prefabs"
)

const (
	// braking factor applied to horizontal velocity when there is no input
	brakeFactor = 0.8
	// cut factor applied to upward velocity when the jump key is released early
	jumpCutFactor = 0.45
)

// Player is the chipmunk-backed player body. It is recreated against each
// map's physics space; gameplay config comes from the player prefab.
type Player struct {
	Width  float64
	Height float64

	moveSpeed float64
	jumpSpeed float64
	col       color.Color

	space *physics.Space
	img   *ebiten.Image
}

// NewPlayer loads the player prefab. Attach binds it to a physics space.
func NewPlayer() (*Player, error) {
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec]("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	p := &Player{
		Width:     spec.Width,
		Height:    spec.Height,
		moveSpeed: spec.MoveSpeed,
		jumpSpeed: spec.JumpSpeed,
		col:       spec.Color.Value(),
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("player: invalid size %gx%g", p.Width, p.Height)
	}
	return p, nil
}

// Attach creates the player's body in a freshly built space, centered at
// (x, y), carrying over the given velocity.
func (p *Player) Attach(space *physics.Space, x, y, vx, vy float64) {
	if p == nil || space == nil {
		return
	}
	space.AttachPlayer(x, y, p.Width, p.Height, vx, vy)
	p.space = space
}

// Update applies input to the body. Call before the physics step.
func (p *Player) Update(input *Input) {
	if p == nil || p.space == nil || input == nil {
		return
	}
	body := p.space.PlayerBody()
	if body == nil {
		return
	}

	v := body.Velocity()
	if input.MoveX != 0 {
		v.X = input.MoveX * p.moveSpeed
	} else {
		v.X *= brakeFactor
	}
	if input.JumpPressed && p.space.IsGrounded() {
		v.Y = -p.jumpSpeed
	}
	if !input.JumpHeld && v.Y < 0 {
		v.Y *= jumpCutFactor
	}
	body.SetVelocity(v.X, v.Y)
}

// Shape returns the player's main collision shape.
func (p *Player) Shape() *cp.Shape {
	if p == nil || p.space == nil {
		return nil
	}
	return p.space.PlayerShape()
}

// Position returns the body center in world pixels.
func (p *Player) Position() (float64, float64) {
	if p == nil || p.space == nil {
		return 0, 0
	}
	body := p.space.PlayerBody()
	if body == nil {
		return 0, 0
	}
	pos := body.Position()
	return pos.X, pos.Y
}

// Velocity returns the body velocity, preserved across map switches.
func (p *Player) Velocity() (float64, float64) {
	if p == nil || p.space == nil {
		return 0, 0
	}
	body := p.space.PlayerBody()
	if body == nil {
		return 0, 0
	}
	v := body.Velocity()
	return v.X, v.Y
}

// HalfSize returns half the player's collision extents.
func (p *Player) HalfSize() (float64, float64) {
	if p == nil {
		return 0, 0
	}
	return p.Width / 2, p.Height / 2
}

// Draw renders the player as a solid rectangle at its body position.
func (p *Player) Draw(screen *ebiten.Image, camX, camY float64) {
	if p == nil || p.space == nil {
		return
	}
	if p.img == nil {
		p.img = ebiten.NewImage(int(p.Width), int(p.Height))
		p.img.Fill(p.col)
	}
	x, y := p.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-p.Width/2-camX, y-p.Height/2-camY)
	screen.DrawImage(p.img, op)
}
