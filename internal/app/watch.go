package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/duopong/internal/audio"
	"github.com/diegok/duopong/internal/client"
	"github.com/diegok/duopong/internal/protocol"
	"github.com/diegok/duopong/internal/ui"
)

// runWatch spectates a match served elsewhere. Only quit keys work.
func (a *App) runWatch() error {
	addr := a.cfg.WatchAddr
	a.renderer.RenderConnecting(addr)

	events := a.pollEvents()
	c, err := a.connect(addr, events)
	if err != nil || c == nil {
		return err
	}
	a.client = c
	log.Printf("watch: connected to %s as %s", addr, c.SpectatorID)

	view := ui.View{Watching: addr, Sound: audio.Enabled()}

	var (
		state protocol.MatchState
		have  bool
	)

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ui.IsQuitKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Clear()
				if have {
					a.renderer.RenderMatch(state, view)
				}
			}

		case state = <-a.client.State:
			have = true
			a.renderer.RenderMatch(state, view)

		case w := <-a.client.Winner:
			log.Printf("watch: %s wins %d - %d", w.Side, w.LeftScore, w.RightScore)
			audio.PlayVictory()

		case err := <-a.client.Error:
			log.Printf("watch: %v", err)
			a.renderer.RenderError(err.Error())
			a.waitForKey(events)
			return err
		}
	}
}

// connect dials addr while still handling keys, so the connecting screen
// can be cancelled. Returns a nil client when the user gave up.
func (a *App) connect(addr string, events <-chan tcell.Event) (*client.Client, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := client.NewClient()
	done := make(chan error, 1)
	go func() { done <- c.Connect(ctx, addr) }()

	for {
		select {
		case err := <-done:
			if err != nil {
				return nil, fmt.Errorf("failed to connect: %w", err)
			}
			return c, nil

		case <-a.quit:
			return a.abandon(c, cancel, done)

		case ev := <-events:
			if ev, ok := ev.(*tcell.EventKey); ok && ui.IsQuitKey(ev.Key(), ev.Rune()) {
				return a.abandon(c, cancel, done)
			}
		}
	}
}

// abandon cancels a pending connect and waits for it to unwind
func (a *App) abandon(c *client.Client, cancel context.CancelFunc, done <-chan error) (*client.Client, error) {
	cancel()
	if err := <-done; err == nil {
		c.Close()
	}
	log.Printf("watch: connect cancelled")
	return nil, nil
}
