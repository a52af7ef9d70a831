package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"

	"github.com/diegok/duopong/internal/game"
)

// Default values for configuration
const (
	DefaultPoints   = 5
	DefaultTickRate = 60
	DefaultHTTPPort = 3000
	MaxPoints       = 99
	MaxTickRate     = 240
)

// Config holds the application configuration
type Config struct {
	PointsToWin  int
	TickRate     int
	Court        game.Options
	SettingsPath string
	HTTPAddr     string // serve documents and spectators when set
	WatchAddr    string // spectate a remote match instead of playing
	NoSound      bool
	LogPath      string
	Seed         uint64 // 0 picks a random seed
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		PointsToWin: DefaultPoints,
		TickRate:    DefaultTickRate,
		Court:       game.DefaultOptions(),
	}
}

// ParseArgs parses command line arguments and returns a Config.
// Values from a --config file override defaults, explicit flags override both.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("duopong", flag.ContinueOnError)

	points := fs.Int("points", DefaultPoints, "points to win (1-99)")
	tickRate := fs.Int("tick-rate", DefaultTickRate, "frames per second")
	settings := fs.String("config", "", "settings file (.yaml, .yml or .toml)")
	httpAddr := fs.String("http", "", "serve the web page and spectator feed on this address")
	watch := fs.String("watch", "", "spectate the match served at this address")
	noSound := fs.Bool("no-sound", false, "disable sound effects")
	logPath := fs.String("log", "", "append logs to this file")
	seed := fs.Uint64("seed", 0, "random seed for serves (0 = random)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	// Validate: cannot play and spectate at once
	if *httpAddr != "" && *watch != "" {
		return nil, errors.New("cannot specify both --http and --watch")
	}

	cfg := Default()
	if *settings != "" {
		if err := LoadSettings(*settings, cfg); err != nil {
			return nil, err
		}
		cfg.SettingsPath = *settings
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "points":
			cfg.PointsToWin = *points
		case "tick-rate":
			cfg.TickRate = *tickRate
		}
	})

	cfg.HTTPAddr = *httpAddr
	cfg.WatchAddr = withDefaultPort(*watch)
	cfg.NoSound = *noSound
	cfg.LogPath = *logPath
	cfg.Seed = *seed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every setting the engine cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.PointsToWin < 1 || c.PointsToWin > MaxPoints {
		errs = append(errs, fmt.Errorf("points must be between 1 and %d, got %d", MaxPoints, c.PointsToWin))
	}
	if c.TickRate < 1 || c.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("tick rate must be between 1 and %d, got %d", MaxTickRate, c.TickRate))
	}

	o := c.Court
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("court must have a positive size, got %gx%g", o.Width, o.Height))
	}
	if o.BallRadius <= 0 || 2*o.BallRadius >= o.Height {
		errs = append(errs, fmt.Errorf("ball radius must be positive and fit the court, got %g", o.BallRadius))
	}
	if o.BallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("ball speed must be positive, got %g", o.BallSpeed))
	}
	if o.PaddleWidth <= 0 || o.PaddleHeight <= 0 {
		errs = append(errs, fmt.Errorf("paddle must have a positive size, got %gx%g", o.PaddleWidth, o.PaddleHeight))
	}
	if o.PaddleHeight > o.Height {
		errs = append(errs, fmt.Errorf("paddle height %g exceeds court height %g", o.PaddleHeight, o.Height))
	}
	if o.PaddleSpeed <= 0 {
		errs = append(errs, fmt.Errorf("paddle speed must be positive, got %g", o.PaddleSpeed))
	}
	if o.PaddleMargin < 0 || 2*(o.PaddleMargin+o.PaddleWidth) > o.Width {
		errs = append(errs, fmt.Errorf("paddles do not fit the court width %g", o.Width))
	}

	return errors.Join(errs...)
}

// withDefaultPort appends the default HTTP port to a bare host
func withDefaultPort(addr string) string {
	if addr == "" {
		return ""
	}
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(DefaultHTTPPort))
}
