package ui

import (
	"fmt"

	"github.com/diegok/duopong/internal/protocol"
	"github.com/gdamore/tcell/v2"
)

const (
	BallChar   = '\u2B24' // ⬤
	PaddleChar = '\u2588' // █
)

// View holds presentation-only state that is not part of the match
type View struct {
	ShowRules bool
	Watching  string // remote address when spectating, read-only mode
	Sound     bool
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// courtArea maps playfield coordinates onto the rows between the
// scoreboard and the status bar
type courtArea struct {
	scaleX, scaleY float64
	top, bottom    int // first and last usable row
	width          int
}

func newCourtArea(state protocol.MatchState, screenW, screenH int) courtArea {
	a := courtArea{top: 1, bottom: screenH - 2, width: screenW}
	if state.Width > 0 {
		a.scaleX = float64(screenW) / state.Width
	}
	if state.Height > 0 {
		a.scaleY = float64(screenH-2) / state.Height
	}
	return a
}

func (a courtArea) col(x float64) int {
	return int(x * a.scaleX)
}

func (a courtArea) row(y float64) int {
	return int(y*a.scaleY) + a.top
}

func (a courtArea) contains(x, y int) bool {
	return x >= 0 && x < a.width && y >= a.top && y <= a.bottom
}

// RenderMatch draws the court, the scores and any open dialog
func (r *Renderer) RenderMatch(state protocol.MatchState, view View) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	area := newCourtArea(state, screenW, screenH)

	courtStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(0, area.top, screenW, area.bottom-area.top+1, courtStyle, ' ')

	centerX := screenW / 2
	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y := area.top; y <= area.bottom; y += 2 {
		r.screen.SetCell(centerX, y, lineStyle, '|')
	}

	r.renderScoreboard(state, screenW)
	r.renderPaddle(area, state.Left, SideStyle(protocol.SideLeft))
	r.renderPaddle(area, state.Right, SideStyle(protocol.SideRight))

	ballX := area.col(state.Ball.X)
	ballY := area.row(state.Ball.Y)
	if area.contains(ballX, ballY) {
		r.screen.SetCell(ballX, ballY, tcell.StyleDefault.Foreground(tcell.ColorWhite), BallChar)
	}

	r.renderStatus(state, view, screenW, screenH-1)

	switch {
	case state.Winner != protocol.SideNone:
		r.renderWinner(state, view, screenW, screenH)
	case view.ShowRules:
		r.renderRules(state, view, screenW, screenH)
	}

	r.screen.Show()
}

func (r *Renderer) renderPaddle(area courtArea, p protocol.PaddleState, style tcell.Style) {
	x0 := area.col(p.X)
	cols := max(area.col(p.X+p.Width)-x0, 1)
	y0 := area.row(p.Y)
	rows := max(area.row(p.Y+p.Height)-y0, 1)

	for dy := 0; dy < rows; dy++ {
		for dx := 0; dx < cols; dx++ {
			if area.contains(x0+dx, y0+dy) {
				r.screen.SetCell(x0+dx, y0+dy, style, PaddleChar)
			}
		}
	}
}

// renderScoreboard draws "P1: n" on the left, "P2: n" on the right and the
// points to win in the middle of the top row
func (r *Renderer) renderScoreboard(state protocol.MatchState, screenW int) {
	barStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.FillRect(0, 0, screenW, 1, barStyle, ' ')

	left := fmt.Sprintf("%s: %d", protocol.SideLeft, state.LeftScore)
	right := fmt.Sprintf("%s: %d", protocol.SideRight, state.RightScore)
	r.screen.DrawText(2, 0, left, barStyle.Foreground(tcell.ColorRed))
	r.screen.DrawText(screenW-2-len(right), 0, right, barStyle.Foreground(tcell.ColorBlue))
	r.screen.DrawCentered(0, fmt.Sprintf("First to %d", state.PointsToWin), barStyle)
}

func (r *Renderer) renderStatus(state protocol.MatchState, view View, screenW, y int) {
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, y, screenW, 1, statusStyle, ' ')
	r.screen.DrawText(0, y, statusText(state, view), statusStyle)
}

func statusText(state protocol.MatchState, view View) string {
	if view.Watching != "" {
		return fmt.Sprintf(" Watching %s | q: quit", view.Watching)
	}

	sound := "off"
	if view.Sound {
		sound = "on"
	}
	if state.Winner != protocol.SideNone {
		return fmt.Sprintf(" Game over | x: close | r: new game | sound %s | q: quit", sound)
	}
	if state.Running {
		return fmt.Sprintf(" Playing | r: reset | h: rules | sound %s | q: quit", sound)
	}
	return fmt.Sprintf(" ENTER: serve | +/-: points | r: reset | h: rules | sound %s | q: quit", sound)
}

func (r *Renderer) dialog(lines []string, hint string, screenW, screenH int, titleStyle tcell.Style) {
	boxW := len(hint) + 6
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l))+6)
	}
	boxH := len(lines) + 5
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2

	fillStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray)
	r.screen.FillRect(boxX, boxY, boxW, boxH, fillStyle, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, fillStyle.Foreground(tcell.ColorWhite))

	for i, l := range lines {
		style := fillStyle.Foreground(tcell.ColorWhite)
		if i == 0 {
			style = titleStyle
		}
		r.screen.DrawCentered(boxY+2+i, l, style)
	}
	r.screen.DrawCentered(boxY+boxH-2, hint, fillStyle.Foreground(tcell.ColorGreen))
}

func (r *Renderer) renderWinner(state protocol.MatchState, view View, screenW, screenH int) {
	lines := []string{
		WinnerText(state.Winner),
		fmt.Sprintf("Final score %d - %d", state.LeftScore, state.RightScore),
	}
	hint := "x: close | r: new game"
	if view.Watching != "" {
		hint = "q: quit"
	}
	titleStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorYellow).Bold(true)
	r.dialog(lines, hint, screenW, screenH, titleStyle)
}

func (r *Renderer) renderRules(state protocol.MatchState, view View, screenW, screenH int) {
	lines := RulesText(state.PointsToWin)
	titleStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorTeal).Bold(true)
	r.dialog(lines, "h: close", screenW, screenH, titleStyle)
}

// WinnerText is the headline of the winner dialog
func WinnerText(side protocol.Side) string {
	return fmt.Sprintf("%s wins!", side)
}

// RulesText lists the controls and the win rule, title first
func RulesText(pointsToWin int) []string {
	return []string{
		"RULES",
		"P1 moves with w / s, P2 with the arrow keys.",
		"Miss the ball and your opponent scores.",
		fmt.Sprintf("First to %d points while ahead wins.", pointsToWin),
		"ENTER serves, r starts a new game, +/- change the points.",
	}
}

// RenderConnecting displays the connecting screen
func (r *Renderer) RenderConnecting(addr string) {
	r.screen.Clear()
	_, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-3, "DUOPONG", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorTeal))
	r.screen.DrawCentered(screenH/2, fmt.Sprintf("Connecting to %s...", addr), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.screen.DrawCentered(screenH/2+3, "Press 'q' to cancel", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-2, "ERROR", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed))

	// Truncate if too long
	maxErrLen := screenW - 4
	errMsg := []rune(err)
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = append(errMsg[:maxErrLen-3], []rune("...")...)
	}
	r.screen.DrawCentered(screenH/2, string(errMsg), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.DrawCentered(screenH/2+3, "Press any key to quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
