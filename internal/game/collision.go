package game

import "github.com/diegok/duopong/internal/protocol"

// PaddleContact reports whether the ball center is inside the reach of a
// paddle. Only the center point is tested, the radius is ignored, so a
// ball may graze a paddle corner without bouncing. The horizontal test is
// one-sided: anything past the paddle's inner face counts.
func PaddleContact(side protocol.Side, ball Vector2, paddle Rect) bool {
	if ball.Y <= paddle.Y || ball.Y >= paddle.Bottom() {
		return false
	}

	switch side {
	case protocol.SideLeft:
		return ball.X < paddle.Right()
	case protocol.SideRight:
		return ball.X > paddle.X
	}
	return false
}

// PastRightWall reports whether the ball has crossed the right goal line
func PastRightWall(ball Vector2, radius, width float64) bool {
	return ball.X+radius > width
}

// PastLeftWall reports whether the ball has crossed the left goal line
func PastLeftWall(ball Vector2, radius float64) bool {
	return ball.X-radius < 0
}

// OutsideVerticalBounds reports whether the ball touches the top or bottom wall
func OutsideVerticalBounds(ball Vector2, radius, height float64) bool {
	return ball.Y+radius > height || ball.Y-radius < 0
}
