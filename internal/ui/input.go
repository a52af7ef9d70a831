package ui

import (
	"github.com/diegok/duopong/internal/config"
	"github.com/diegok/duopong/internal/protocol"
	"github.com/gdamore/tcell/v2"
)

// HoldTimeout is how many frames a paddle keeps moving after the last
// key repeat (~133ms at 60Hz)
const HoldTimeout = 8

// Command is a non-movement action bound to a key
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdStart
	CmdReset
	CmdToggleRules
	CmdAcknowledge
	CmdPointsUp
	CmdPointsDown
)

// KeyToPaddleInput maps a key to the paddle it drives and the direction.
// w/s move the left paddle, the arrow keys move the right one.
func KeyToPaddleInput(key tcell.Key, r rune) (protocol.Side, protocol.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return protocol.SideRight, protocol.DirUp, true
	case tcell.KeyDown:
		return protocol.SideRight, protocol.DirDown, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return protocol.SideLeft, protocol.DirUp, true
		case 's', 'S':
			return protocol.SideLeft, protocol.DirDown, true
		}
	}
	return protocol.SideNone, protocol.DirStop, false
}

// KeyToCommand converts a key event to a command
func KeyToCommand(key tcell.Key, r rune) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyEnter:
		return CmdStart
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return CmdQuit
		case ' ':
			return CmdStart
		case 'r', 'R':
			return CmdReset
		case 'h', 'H', '?':
			return CmdToggleRules
		case 'x', 'X':
			return CmdAcknowledge
		case '+', '=':
			return CmdPointsUp
		case '-', '_':
			return CmdPointsDown
		}
	}
	return CmdNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	return KeyToCommand(key, r) == CmdQuit
}

// HoldTracker turns repeated key presses into a held direction. Terminals
// only report presses, so the direction is dropped once no repeat arrives
// for HoldTimeout frames.
type HoldTracker struct {
	dir   protocol.Direction
	ticks int
}

// Press records a key press (or auto-repeat) in dir
func (h *HoldTracker) Press(dir protocol.Direction) {
	h.dir = dir
	h.ticks = HoldTimeout
}

// Release stops immediately
func (h *HoldTracker) Release() {
	h.dir = protocol.DirStop
	h.ticks = 0
}

// Tick advances one frame and returns the direction to apply for it
func (h *HoldTracker) Tick() protocol.Direction {
	if h.ticks <= 0 {
		h.dir = protocol.DirStop
		return h.dir
	}
	h.ticks--
	return h.dir
}

// PointsControl is the points-to-win selector. It keeps the value within
// [1, config.MaxPoints] so the match can query it every frame.
type PointsControl struct {
	value int
}

func NewPointsControl(initial int) *PointsControl {
	p := &PointsControl{}
	p.Set(initial)
	return p
}

func (p *PointsControl) Set(v int) {
	p.value = min(max(v, 1), config.MaxPoints)
}

func (p *PointsControl) Inc() { p.Set(p.value + 1) }

func (p *PointsControl) Dec() { p.Set(p.value - 1) }

// Value satisfies the match's points-to-win query
func (p *PointsControl) Value() int {
	return p.value
}
