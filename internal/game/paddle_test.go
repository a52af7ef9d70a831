package game

import (
	"testing"

	"github.com/diegok/duopong/internal/protocol"
)

func TestNewPaddle_Centered(t *testing.T) {
	paddle := NewPaddle(10, 16, 120, 8, 480)

	if paddle.Y != 180 {
		t.Errorf("expected Y=180, got %f", paddle.Y)
	}
	if paddle.VY != 0 {
		t.Errorf("expected idle paddle, got VY=%f", paddle.VY)
	}
}

func TestPaddle_SetDirection(t *testing.T) {
	tests := []struct {
		dir  protocol.Direction
		want float64
	}{
		{protocol.DirUp, -8},
		{protocol.DirDown, 8},
		{protocol.DirStop, 0},
	}

	for _, tt := range tests {
		paddle := NewPaddle(10, 16, 120, 8, 480)
		paddle.VY = 3
		paddle.SetDirection(tt.dir)
		if paddle.VY != tt.want {
			t.Errorf("SetDirection(%d): expected VY=%f, got %f", tt.dir, tt.want, paddle.VY)
		}
	}
}

func TestPaddle_MoveUp(t *testing.T) {
	paddle := NewPaddle(10, 16, 120, 8, 480)
	paddle.SetDirection(protocol.DirUp)
	initialY := paddle.Y

	paddle.Move()

	expectedY := initialY - 8
	if paddle.Y != expectedY {
		t.Errorf("expected Y=%f, got %f", expectedY, paddle.Y)
	}
}

func TestPaddle_MoveDown(t *testing.T) {
	paddle := NewPaddle(10, 16, 120, 8, 480)
	paddle.SetDirection(protocol.DirDown)
	initialY := paddle.Y

	paddle.Move()

	expectedY := initialY + 8
	if paddle.Y != expectedY {
		t.Errorf("expected Y=%f, got %f", expectedY, paddle.Y)
	}
}

func TestPaddle_StaysInBounds_Top(t *testing.T) {
	paddle := NewPaddle(10, 16, 120, 8, 480)
	paddle.Y = 5
	paddle.SetDirection(protocol.DirUp)

	for i := 0; i < 10; i++ {
		paddle.Move()
	}

	if paddle.Y != 0 {
		t.Errorf("expected paddle clamped at top, got Y=%f", paddle.Y)
	}
}

func TestPaddle_StaysInBounds_Bottom(t *testing.T) {
	paddle := NewPaddle(10, 16, 120, 8, 480)
	paddle.Y = 355
	paddle.SetDirection(protocol.DirDown)

	for i := 0; i < 10; i++ {
		paddle.Move()
	}

	if paddle.Y != 360 {
		t.Errorf("expected paddle clamped at 360, got Y=%f", paddle.Y)
	}
}

func TestPaddle_ClampInvariant(t *testing.T) {
	const courtHeight = 480.0
	heights := []float64{1, 115.2, 240, 480}
	velocities := []float64{-1000, -37.5, -8, -0.1, 0, 0.1, 8, 37.5, 1000}

	for _, h := range heights {
		for y := -600.0; y <= 1000; y += 47.3 {
			for _, v := range velocities {
				paddle := NewPaddle(10, 16, h, 8, courtHeight)
				paddle.Y = y
				paddle.SetVelocity(v)

				paddle.Move()

				if paddle.Y < 0 || paddle.Y > courtHeight-h {
					t.Fatalf("height %f from Y=%f with VY=%f: got Y=%f outside [0, %f]",
						h, y, v, paddle.Y, courtHeight-h)
				}
			}
		}
	}
}

func TestPaddle_ResetPosition(t *testing.T) {
	paddle := NewPaddle(10, 16, 100, 8, 480)
	paddle.Y = 0
	paddle.SetDirection(protocol.DirDown)

	paddle.ResetPosition()

	if paddle.Y != 190 {
		t.Errorf("expected Y=190, got %f", paddle.Y)
	}
	if paddle.VY != 8 {
		t.Errorf("expected velocity intent kept, got VY=%f", paddle.VY)
	}
}

func TestPaddle_Rect(t *testing.T) {
	paddle := NewPaddle(10, 16, 100, 8, 480)
	r := paddle.Rect()

	if r.X != 10 || r.Y != 190 || r.Width != 16 || r.Height != 100 {
		t.Errorf("unexpected rect %+v", r)
	}
	if r.Right() != 26 {
		t.Errorf("expected right edge 26, got %f", r.Right())
	}
	if r.Bottom() != 290 {
		t.Errorf("expected bottom edge 290, got %f", r.Bottom())
	}
}
