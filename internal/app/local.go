package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/duopong/internal/audio"
	"github.com/diegok/duopong/internal/config"
	"github.com/diegok/duopong/internal/game"
	"github.com/diegok/duopong/internal/protocol"
	"github.com/diegok/duopong/internal/server"
	"github.com/diegok/duopong/internal/ui"
)

// session is one local two-player match and the input state around it.
// Everything runs on the frame loop goroutine.
type session struct {
	match  *game.Match
	points *ui.PointsControl
	left   ui.HoldTracker
	right  ui.HoldTracker
	view   ui.View
	play   func(game.Event)
}

func newSession(cfg *config.Config, play func(game.Event)) *session {
	var rng game.RandomSource
	if cfg.Seed != 0 {
		rng = game.NewSeededRNG(cfg.Seed)
	}

	points := ui.NewPointsControl(cfg.PointsToWin)
	return &session{
		match:  game.NewMatch(cfg.Court, points.Value, rng),
		points: points,
		play:   play,
	}
}

// handleKey applies one key press. Returns true if the application
// should quit.
func (s *session) handleKey(ev *tcell.EventKey) bool {
	if side, dir, ok := ui.KeyToPaddleInput(ev.Key(), ev.Rune()); ok {
		s.hold(side).Press(dir)
		return false
	}

	switch ui.KeyToCommand(ev.Key(), ev.Rune()) {
	case ui.CmdQuit:
		return true
	case ui.CmdStart:
		s.match.Start()
		s.view.ShowRules = false
		log.Printf("match: serve, first to %d", s.points.Value())
	case ui.CmdReset:
		s.match.Reset()
		s.left.Release()
		s.right.Release()
		log.Printf("match: reset")
	case ui.CmdToggleRules:
		s.view.ShowRules = !s.view.ShowRules
	case ui.CmdAcknowledge:
		s.match.AcknowledgeWinner()
	case ui.CmdPointsUp:
		s.points.Inc()
	case ui.CmdPointsDown:
		s.points.Dec()
	}
	return false
}

func (s *session) hold(side protocol.Side) *ui.HoldTracker {
	if side == protocol.SideRight {
		return &s.right
	}
	return &s.left
}

// step runs one frame and returns the snapshot to draw and publish
func (s *session) step() protocol.MatchState {
	s.match.SetPaddleIntent(protocol.SideLeft, s.left.Tick())
	s.match.SetPaddleIntent(protocol.SideRight, s.right.Tick())

	ev := s.match.Step()
	if ev != 0 && s.play != nil {
		s.play(ev)
	}

	if ev.Has(game.EventLeftScored) || ev.Has(game.EventRightScored) {
		l, r := s.match.Scores()
		log.Printf("match: score %d - %d", l, r)
	}
	if ev.Has(game.EventWinner) {
		log.Printf("match: %s wins", s.match.PendingWinner())
	}

	return s.match.Snapshot()
}

// playSounds maps step events onto effects, loudest first
func playSounds(ev game.Event) {
	switch {
	case ev.Has(game.EventWinner):
		audio.PlayVictory()
	case ev.Has(game.EventLeftScored), ev.Has(game.EventRightScored):
		audio.PlayScore()
	case ev.Has(game.EventPaddleHit):
		audio.PlayPaddleHit()
	case ev.Has(game.EventWallBounce):
		audio.PlayWallBounce()
	}
}

// runLocal drives a local match at the configured tick rate, optionally
// serving it to spectators.
func (a *App) runLocal() error {
	s := newSession(a.cfg, playSounds)
	s.view.Sound = audio.Enabled()

	if a.cfg.HTTPAddr != "" {
		a.server = server.NewServer(a.cfg.HTTPAddr)
		a.server.Publish(s.match.Snapshot())
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	}

	events := a.pollEvents()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Clear()
			}

		case <-ticker.C:
			state := s.step()
			if a.server != nil {
				a.server.Publish(state)
			}
			a.renderer.RenderMatch(state, s.view)
		}
	}
}
