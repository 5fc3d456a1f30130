// Package config reads the options of a chess block and validates them
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"gopkg.in/yaml.v3"
)

var (
	ErrBothSources = errors.New("both FEN and PGN detected")
	ErrNoSource    = errors.New("no FEN or PGN found")
	ErrOrientation = errors.New("orientation must be white or black")
)

// Settings are the defaults every block starts from
type Settings struct {
	ViewOnly          bool   `yaml:"viewOnly"`
	EnableCoordinates bool   `yaml:"enableCoordinates"`
	BoardStyle        string `yaml:"boardStyle"`
	Orientation       string `yaml:"orientation"`
	ShowSidebar       bool   `yaml:"showSidebar"`
	ShowAnnotations   bool   `yaml:"showAnnotations"`
}

var DefaultSettings = Settings{
	ViewOnly:          false,
	EnableCoordinates: true,
	BoardStyle:        "brown",
	Orientation:       "white",
	ShowSidebar:       true,
	ShowAnnotations:   true,
}

// Config is the merged configuration of one block
type Config struct {
	Settings `yaml:",inline"`

	ID  string `yaml:"id"`
	FEN string `yaml:"fen"`
	PGN string `yaml:"pgn"`
	// CurrentMoveIndex is the starting cursor. Nil means the end of the game.
	CurrentMoveIndex *int `yaml:"currentMoveIndex"`
}

// Parse reads a YAML block over the given settings
func Parse(settings Settings, content string) (Config, error) {
	cfg := Config{Settings: settings}
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	return cfg, nil
}

// FromPGN is the config of a block holding raw movetext
func FromPGN(settings Settings, source string) Config {
	return Config{Settings: settings, PGN: strings.TrimSpace(source)}
}

// FromFEN is the config of a block holding a single position
func FromFEN(settings Settings, source string) Config {
	return Config{Settings: settings, FEN: strings.TrimSpace(source)}
}

// Validate checks that exactly one game source is present and the options
// are recognized
func (c Config) Validate() error {
	hasFEN := strings.TrimSpace(c.FEN) != ""
	hasPGN := strings.TrimSpace(c.PGN) != ""
	switch {
	case hasFEN && hasPGN:
		return ErrBothSources
	case !hasFEN && !hasPGN:
		return ErrNoSource
	}
	if _, err := ParseOrientation(c.Orientation); err != nil {
		return err
	}
	return nil
}

// Source is the text the game was loaded from
func (c Config) Source() string {
	if strings.TrimSpace(c.PGN) != "" {
		return c.PGN
	}
	return c.FEN
}

// Color is the board orientation
func (c Config) Color() chess.Color {
	color, _ := ParseOrientation(c.Orientation)
	return color
}

// ParseOrientation maps "white" and "black" to colors. An empty string is
// white.
func ParseOrientation(s string) (chess.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white":
		return chess.White, nil
	case "black":
		return chess.Black, nil
	default:
		return chess.NoColor, fmt.Errorf("%w: %q", ErrOrientation, s)
	}
}
