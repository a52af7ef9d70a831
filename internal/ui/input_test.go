package ui

import (
	"testing"

	"github.com/diegok/duopong/internal/config"
	"github.com/diegok/duopong/internal/protocol"
	"github.com/gdamore/tcell/v2"
)

func TestKeyToPaddleInput(t *testing.T) {
	tests := []struct {
		key      tcell.Key
		rune     rune
		wantSide protocol.Side
		wantDir  protocol.Direction
		wantOK   bool
	}{
		{tcell.KeyUp, 0, protocol.SideRight, protocol.DirUp, true},
		{tcell.KeyDown, 0, protocol.SideRight, protocol.DirDown, true},
		{tcell.KeyRune, 'w', protocol.SideLeft, protocol.DirUp, true},
		{tcell.KeyRune, 'W', protocol.SideLeft, protocol.DirUp, true},
		{tcell.KeyRune, 's', protocol.SideLeft, protocol.DirDown, true},
		{tcell.KeyRune, 'S', protocol.SideLeft, protocol.DirDown, true},
		{tcell.KeyRune, 'x', protocol.SideNone, protocol.DirStop, false},
		{tcell.KeyLeft, 0, protocol.SideNone, protocol.DirStop, false},
	}

	for _, tt := range tests {
		side, dir, ok := KeyToPaddleInput(tt.key, tt.rune)
		if side != tt.wantSide || dir != tt.wantDir || ok != tt.wantOK {
			t.Errorf("KeyToPaddleInput(%v, %c) = %v, %v, %v, want %v, %v, %v",
				tt.key, tt.rune, side, dir, ok, tt.wantSide, tt.wantDir, tt.wantOK)
		}
	}
}

func TestKeyToCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want Command
	}{
		{tcell.KeyEnter, 0, CmdStart},
		{tcell.KeyRune, ' ', CmdStart},
		{tcell.KeyRune, 'r', CmdReset},
		{tcell.KeyRune, 'h', CmdToggleRules},
		{tcell.KeyRune, '?', CmdToggleRules},
		{tcell.KeyRune, 'x', CmdAcknowledge},
		{tcell.KeyRune, '+', CmdPointsUp},
		{tcell.KeyRune, '-', CmdPointsDown},
		{tcell.KeyRune, 'q', CmdQuit},
		{tcell.KeyEscape, 0, CmdQuit},
		{tcell.KeyCtrlC, 0, CmdQuit},
		{tcell.KeyRune, 'w', CmdNone},
		{tcell.KeyUp, 0, CmdNone},
	}

	for _, tt := range tests {
		got := KeyToCommand(tt.key, tt.rune)
		if got != tt.want {
			t.Errorf("KeyToCommand(%v, %c) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestIsQuitKey(t *testing.T) {
	if !IsQuitKey(tcell.KeyRune, 'q') {
		t.Error("'q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyRune, 'Q') {
		t.Error("'Q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyEscape, 0) {
		t.Error("Escape should be quit key")
	}
	if !IsQuitKey(tcell.KeyCtrlC, 0) {
		t.Error("Ctrl+C should be quit key")
	}
	if IsQuitKey(tcell.KeyRune, 'x') {
		t.Error("'x' should not be quit key")
	}
}

func TestHoldTracker(t *testing.T) {
	var h HoldTracker

	if got := h.Tick(); got != protocol.DirStop {
		t.Fatalf("expected idle tracker to stop, got %v", got)
	}

	h.Press(protocol.DirUp)
	for i := 0; i < HoldTimeout; i++ {
		if got := h.Tick(); got != protocol.DirUp {
			t.Fatalf("frame %d: expected DirUp while held, got %v", i, got)
		}
	}
	if got := h.Tick(); got != protocol.DirStop {
		t.Errorf("expected DirStop after %d frames without repeat, got %v", HoldTimeout, got)
	}
}

func TestHoldTracker_RepeatExtends(t *testing.T) {
	var h HoldTracker

	h.Press(protocol.DirDown)
	for i := 0; i < 3*HoldTimeout; i++ {
		if i%HoldTimeout == HoldTimeout-1 {
			h.Press(protocol.DirDown)
		}
		if got := h.Tick(); got != protocol.DirDown {
			t.Fatalf("frame %d: expected DirDown while repeating, got %v", i, got)
		}
	}
}

func TestHoldTracker_ChangeAndRelease(t *testing.T) {
	var h HoldTracker

	h.Press(protocol.DirUp)
	h.Tick()
	h.Press(protocol.DirDown)
	if got := h.Tick(); got != protocol.DirDown {
		t.Errorf("expected new direction to win, got %v", got)
	}

	h.Release()
	if got := h.Tick(); got != protocol.DirStop {
		t.Errorf("expected DirStop after release, got %v", got)
	}
}

func TestPointsControl(t *testing.T) {
	p := NewPointsControl(5)
	p.Inc()
	if p.Value() != 6 {
		t.Errorf("expected 6, got %d", p.Value())
	}
	p.Dec()
	p.Dec()
	if p.Value() != 4 {
		t.Errorf("expected 4, got %d", p.Value())
	}
}

func TestPointsControl_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		want    int
	}{
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"too many", 500, config.MaxPoints},
		{"in range", 21, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPointsControl(tt.initial)
			if p.Value() != tt.want {
				t.Errorf("expected %d, got %d", tt.want, p.Value())
			}
		})
	}

	low := NewPointsControl(1)
	low.Dec()
	if low.Value() != 1 {
		t.Errorf("expected decrement below 1 to stay at 1, got %d", low.Value())
	}

	high := NewPointsControl(config.MaxPoints)
	high.Inc()
	if high.Value() != config.MaxPoints {
		t.Errorf("expected increment above max to stay at %d, got %d", config.MaxPoints, high.Value())
	}
}
