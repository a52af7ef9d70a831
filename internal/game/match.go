package game

import "github.com/diegok/duopong/internal/protocol"

// Defaults for a classic 5:3 court
const (
	DefaultWidth        = 800.0
	DefaultHeight       = 480.0 // 0.6 of the width
	DefaultBallRadius   = 10.0
	DefaultBallSpeed    = 4.0
	DefaultPaddleWidth  = 16.0  // 2% of the width
	DefaultPaddleHeight = 115.2 // 24% of the height
	DefaultPaddleSpeed  = 8.0
	DefaultPaddleMargin = 10.0 // gap between a paddle and its wall
)

// Options sizes the court and everything on it
type Options struct {
	Width, Height float64
	BallRadius    float64
	BallSpeed     float64
	PaddleWidth   float64
	PaddleHeight  float64
	PaddleSpeed   float64
	PaddleMargin  float64
}

func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		BallRadius:   DefaultBallRadius,
		BallSpeed:    DefaultBallSpeed,
		PaddleWidth:  DefaultPaddleWidth,
		PaddleHeight: DefaultPaddleHeight,
		PaddleSpeed:  DefaultPaddleSpeed,
		PaddleMargin: DefaultPaddleMargin,
	}
}

// Event is a set of things that happened during one Step
type Event uint8

const (
	EventPaddleHit Event = 1 << iota
	EventWallBounce
	EventLeftScored
	EventRightScored
	EventWinner
)

// Has reports whether all flags in f are set
func (e Event) Has(f Event) bool {
	return e&f == f
}

// Match owns one ball, two paddles and the score. It is not safe for
// concurrent use: intents and Step must come from the same goroutine.
type Match struct {
	opts        Options
	ball        *Ball
	left        *Paddle
	right       *Paddle
	leftScore   int
	rightScore  int
	running     bool
	pointsToWin func() int
	rng         RandomSource

	winner    protocol.Side // pending, unacknowledged
	announced bool          // winner already fired for this finish
	tick      int
}

// NewMatch builds an idle match. pointsToWin is queried every step and
// must return at least 1. A nil rng uses DefaultRNG.
func NewMatch(opts Options, pointsToWin func() int, rng RandomSource) *Match {
	if rng == nil {
		rng = DefaultRNG()
	}

	m := &Match{
		opts:        opts,
		pointsToWin: pointsToWin,
		rng:         rng,
	}
	m.ball = NewBall(m.center(), opts.BallRadius, opts.BallSpeed)
	m.left = NewPaddle(opts.PaddleMargin, opts.PaddleWidth, opts.PaddleHeight, opts.PaddleSpeed, opts.Height)
	m.right = NewPaddle(opts.Width-opts.PaddleWidth-opts.PaddleMargin, opts.PaddleWidth, opts.PaddleHeight, opts.PaddleSpeed, opts.Height)
	return m
}

func (m *Match) center() Vector2 {
	return Vector2{X: m.opts.Width / 2, Y: m.opts.Height / 2}
}

// Start serves a fresh ball from the center. Scores and paddles are kept.
func (m *Match) Start() {
	m.clearWinner()
	m.ball.ResetTo(m.center())
	m.ball.Serve(m.rng)
	m.running = true
}

// Reset stops play, zeroes the score and re-centers everything
func (m *Match) Reset() {
	m.clearWinner()
	m.running = false
	m.ball.ResetTo(m.center())
	m.left.ResetPosition()
	m.right.ResetPosition()
	m.leftScore = 0
	m.rightScore = 0
}

func (m *Match) clearWinner() {
	m.winner = protocol.SideNone
	m.announced = false
}

// SetPaddleIntent sets the velocity intent of one side's paddle
func (m *Match) SetPaddleIntent(side protocol.Side, dir protocol.Direction) {
	switch side {
	case protocol.SideLeft:
		m.left.SetDirection(dir)
	case protocol.SideRight:
		m.right.SetDirection(dir)
	}
}

// Step runs one frame. Paddles always move so players can warm up;
// the ball only moves while a game is running.
func (m *Match) Step() Event {
	m.tick++

	if !m.running {
		m.left.Move()
		m.right.Move()
		return 0
	}

	m.ball.Move()
	m.left.Move()
	m.right.Move()

	ev := m.checkPaddleCollisions()
	ev |= m.checkWallCollisions()
	ev |= m.checkWinner()
	return ev
}

// checkPaddleCollisions tests both paddles every frame. A ball touching
// both at once is flipped twice.
func (m *Match) checkPaddleCollisions() Event {
	var ev Event
	if PaddleContact(protocol.SideLeft, m.ball.Pos, m.left.Rect()) {
		m.ball.BounceHorizontal()
		ev |= EventPaddleHit
	}
	if PaddleContact(protocol.SideRight, m.ball.Pos, m.right.Rect()) {
		m.ball.BounceHorizontal()
		ev |= EventPaddleHit
	}
	return ev
}

// checkWallCollisions scores goals and bounces off the top and bottom.
// A scored ball goes back to the center keeping its velocity.
func (m *Match) checkWallCollisions() Event {
	var ev Event
	if PastRightWall(m.ball.Pos, m.ball.Radius, m.opts.Width) {
		m.leftScore++
		m.ball.ResetTo(m.center())
		ev |= EventLeftScored
	}
	if PastLeftWall(m.ball.Pos, m.ball.Radius) {
		m.rightScore++
		m.ball.ResetTo(m.center())
		ev |= EventRightScored
	}
	if OutsideVerticalBounds(m.ball.Pos, m.ball.Radius, m.opts.Height) {
		m.ball.BounceVertical()
		ev |= EventWallBounce
	}
	return ev
}

func (m *Match) checkWinner() Event {
	target := m.pointsToWin()

	var side protocol.Side
	switch {
	case m.leftScore > m.rightScore && m.leftScore == target:
		side = protocol.SideLeft
	case m.rightScore > m.leftScore && m.rightScore == target:
		side = protocol.SideRight
	default:
		return 0
	}

	m.running = false
	if m.announced {
		return 0
	}
	m.announced = true
	m.winner = side
	return EventWinner
}

// PendingWinner returns the side whose win has not been acknowledged yet,
// or SideNone
func (m *Match) PendingWinner() protocol.Side {
	return m.winner
}

// AcknowledgeWinner clears the pending winner. The same finish is never
// announced again; only Start or Reset re-arm the announcement.
func (m *Match) AcknowledgeWinner() {
	m.winner = protocol.SideNone
}

func (m *Match) Running() bool {
	return m.running
}

func (m *Match) Scores() (left, right int) {
	return m.leftScore, m.rightScore
}

// Ball returns a copy of the ball
func (m *Match) Ball() Ball {
	return *m.ball
}

// Paddle returns a copy of one side's paddle
func (m *Match) Paddle(side protocol.Side) Paddle {
	if side == protocol.SideRight {
		return *m.right
	}
	return *m.left
}

// Snapshot captures the state the presentation layer draws
func (m *Match) Snapshot() protocol.MatchState {
	return protocol.MatchState{
		Tick:   m.tick,
		Width:  m.opts.Width,
		Height: m.opts.Height,
		Ball: protocol.BallState{
			X:      m.ball.Pos.X,
			Y:      m.ball.Pos.Y,
			VX:     m.ball.Vel.X,
			VY:     m.ball.Vel.Y,
			Radius: m.ball.Radius,
		},
		Left:        paddleState(m.left),
		Right:       paddleState(m.right),
		LeftScore:   m.leftScore,
		RightScore:  m.rightScore,
		Running:     m.running,
		PointsToWin: m.pointsToWin(),
		Winner:      m.winner,
	}
}

func paddleState(p *Paddle) protocol.PaddleState {
	return protocol.PaddleState{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}
