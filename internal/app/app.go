package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/duopong/internal/audio"
	"github.com/diegok/duopong/internal/client"
	"github.com/diegok/duopong/internal/config"
	"github.com/diegok/duopong/internal/server"
	"github.com/diegok/duopong/internal/ui"
)

const shutdownTimeout = 2 * time.Second

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg      *config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	client   *client.Client
	server   *server.Server
	logFile  io.Closer

	quit    chan struct{}
	done    chan struct{} // closed by cleanup
	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:  cfg,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Run is the main entry point for the application.
// It initializes the screen, sets up signal handling, and starts the game.
func (a *App) Run() error {
	if err := a.setupLogging(); err != nil {
		return err
	}

	// Game works without sound
	if !a.cfg.NoSound {
		if err := audio.Init(); err != nil {
			log.Printf("audio: %v", err)
		}
	}

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go a.watchSignals()

	var runErr error
	if a.cfg.WatchAddr != "" {
		runErr = a.runWatch()
	} else {
		runErr = a.runLocal()
	}

	a.cleanup()

	return runErr
}

// watchSignals turns SIGINT or SIGTERM into quit and returns once the
// app has cleaned up.
func (a *App) watchSignals() {
	select {
	case <-a.sigChan:
		close(a.quit)
	case <-a.done:
	}
}

// setupLogging sends the standard logger to the --log file. The terminal
// belongs to the renderer, so without a file logs are discarded.
func (a *App) setupLogging() error {
	if a.cfg.LogPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(a.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("duopong starting: points=%d tick-rate=%d", a.cfg.PointsToWin, a.cfg.TickRate)
	return nil
}

// pollEvents pumps screen events into a channel until quit
func (a *App) pollEvents() <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()
	return events
}

// waitForKey blocks until a key is pressed or the app is told to quit
func (a *App) waitForKey(events <-chan tcell.Event) {
	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventKey); ok {
				return
			}
		case <-a.quit:
			return
		}
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.client != nil {
		a.client.Close()
	}

	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.server.Stop(ctx); err != nil {
			log.Printf("http: shutdown: %v", err)
		}
		cancel()
	}

	if a.screen != nil {
		a.screen.Fini()
	}

	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}
	close(a.done)

	if a.logFile != nil {
		log.SetOutput(os.Stderr)
		a.logFile.Close()
	}
}
