package game

import "github.com/diegok/duopong/internal/protocol"

type Paddle struct {
	X           float64 // left edge (fixed)
	Y           float64 // top edge
	Width       float64
	Height      float64
	VY          float64 // signed, zero when idle
	Speed       float64
	CourtHeight float64
}

// NewPaddle creates a paddle at column x, vertically centered.
// height must not exceed courtHeight.
func NewPaddle(x, width, height, speed, courtHeight float64) *Paddle {
	p := &Paddle{
		X:           x,
		Width:       width,
		Height:      height,
		Speed:       speed,
		CourtHeight: courtHeight,
	}
	p.ResetPosition()
	return p
}

// SetVelocity sets the vertical velocity intent
func (p *Paddle) SetVelocity(v float64) {
	p.VY = v
}

// SetDirection maps a movement direction to a velocity intent
func (p *Paddle) SetDirection(dir protocol.Direction) {
	switch dir {
	case protocol.DirUp:
		p.SetVelocity(-p.Speed)
	case protocol.DirDown:
		p.SetVelocity(p.Speed)
	default:
		p.SetVelocity(0)
	}
}

// Move advances the paddle and clamps it to the court
func (p *Paddle) Move() {
	p.Y += p.VY

	if p.Y+p.Height > p.CourtHeight {
		p.Y = p.CourtHeight - p.Height
	}
	if p.Y < 0 {
		p.Y = 0
	}
}

// ResetPosition re-centers the paddle vertically
func (p *Paddle) ResetPosition() {
	p.Y = p.CourtHeight/2 - p.Height/2
}

func (p *Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}
