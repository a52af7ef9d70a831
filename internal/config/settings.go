package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings mirrors the settings file schema. Keys left out of a file keep
// their current value.
type Settings struct {
	PointsToWin int            `yaml:"points_to_win" toml:"points_to_win"`
	TickRate    int            `yaml:"tick_rate" toml:"tick_rate"`
	Court       CourtSettings  `yaml:"court" toml:"court"`
	Ball        BallSettings   `yaml:"ball" toml:"ball"`
	Paddle      PaddleSettings `yaml:"paddle" toml:"paddle"`
}

type CourtSettings struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type BallSettings struct {
	Radius float64 `yaml:"radius" toml:"radius"`
	Speed  float64 `yaml:"speed" toml:"speed"`
}

type PaddleSettings struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Speed  float64 `yaml:"speed" toml:"speed"`
	Margin float64 `yaml:"margin" toml:"margin"`
}

// LoadSettings reads a YAML or TOML file, picked by extension, over cfg
func LoadSettings(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	s := settingsFrom(cfg)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &s)
	case ".toml":
		err = decodeTOML(data, &s)
	default:
		return fmt.Errorf("settings file %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("settings file %s: %w", path, err)
	}

	s.apply(cfg)
	return nil
}

func decodeYAML(data []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty file decodes to io.EOF and changes nothing
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, s *Settings) error {
	md, err := toml.Decode(string(data), s)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func settingsFrom(cfg *Config) Settings {
	o := cfg.Court
	return Settings{
		PointsToWin: cfg.PointsToWin,
		TickRate:    cfg.TickRate,
		Court:       CourtSettings{Width: o.Width, Height: o.Height},
		Ball:        BallSettings{Radius: o.BallRadius, Speed: o.BallSpeed},
		Paddle: PaddleSettings{
			Width:  o.PaddleWidth,
			Height: o.PaddleHeight,
			Speed:  o.PaddleSpeed,
			Margin: o.PaddleMargin,
		},
	}
}

func (s Settings) apply(cfg *Config) {
	cfg.PointsToWin = s.PointsToWin
	cfg.TickRate = s.TickRate
	cfg.Court.Width = s.Court.Width
	cfg.Court.Height = s.Court.Height
	cfg.Court.BallRadius = s.Ball.Radius
	cfg.Court.BallSpeed = s.Ball.Speed
	cfg.Court.PaddleWidth = s.Paddle.Width
	cfg.Court.PaddleHeight = s.Paddle.Height
	cfg.Court.PaddleSpeed = s.Paddle.Speed
	cfg.Court.PaddleMargin = s.Paddle.Margin
}
