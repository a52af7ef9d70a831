package game

type Ball struct {
	Pos    Vector2
	Vel    Vector2
	Radius float64
	Speed  float64 // per-axis magnitude given on serve
}

// NewBall places a ball at center moving diagonally down-right at speed
func NewBall(center Vector2, radius, speed float64) *Ball {
	return &Ball{
		Pos:    center,
		Vel:    Vector2{X: speed, Y: speed},
		Radius: radius,
		Speed:  speed,
	}
}

// Move advances the ball by its velocity, one frame at a time
func (b *Ball) Move() {
	b.Pos = b.Pos.Add(b.Vel)
}

// ResetTo places the ball at center without touching its velocity
func (b *Ball) ResetTo(center Vector2) {
	b.Pos = center
}

// BounceHorizontal reverses horizontal direction (paddle bounce)
func (b *Ball) BounceHorizontal() {
	b.Vel.X = -b.Vel.X
}

// BounceVertical reverses vertical direction (wall bounce)
func (b *Ball) BounceVertical() {
	b.Vel.Y = -b.Vel.Y
}

// Serve gives the ball a fresh velocity of Speed on each axis,
// each sign picked independently
func (b *Ball) Serve(rng RandomSource) {
	b.Vel.X = coinFlip(rng) * b.Speed
	b.Vel.Y = coinFlip(rng) * b.Speed
}
