package geoplot

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go-simpler.org/env"
)

// Settings are the construction-time defaults of a Session. Reset restores
// them, so values loaded here survive every Show and SaveFig.
type Settings struct {
	Tiles        string `toml:"tiles" env:"GEOPLOT_TILES"`
	MapAlpha     int    `toml:"map_alpha" env:"GEOPLOT_MAP_ALPHA"`
	Smoothing    bool   `toml:"smoothing" env:"GEOPLOT_SMOOTHING"`
	WindowWidth  int    `toml:"window_width" env:"GEOPLOT_WINDOW_WIDTH"` // 0 means 90% of the display
	WindowHeight int    `toml:"window_height" env:"GEOPLOT_WINDOW_HEIGHT"`
	LogLevel     string `toml:"log_level" env:"GEOPLOT_LOG_LEVEL"`   // debug, info, warn, error
	LogFormat    string `toml:"log_format" env:"GEOPLOT_LOG_FORMAT"` // text or json
}

// Default values of a fresh session.
const (
	DefaultMapAlpha = 196
)

// DefaultSettings returns the builtin defaults: mapquest tiles, map alpha
// 196, smoothing off and a window covering 90% of the display.
func DefaultSettings() Settings {
	return Settings{
		Tiles:     DefaultTiles,
		MapAlpha:  DefaultMapAlpha,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadSettings starts from DefaultSettings, applies the TOML file at path
// (skipped when path is empty), then GEOPLOT_* environment variables, and
// validates the result.
func LoadSettings(path string) (Settings, error) {
	return loadSettings(path, nil)
}

func loadSettings(path string, src env.Source) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		md, err := toml.DecodeFile(path, &s)
		if err != nil {
			return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Settings{}, fmt.Errorf("load settings %s: unknown keys %v", path, undecoded)
		}
	}
	var opts *env.Options
	if src != nil {
		opts = &env.Options{Source: src}
	}
	if err := env.Load(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("load settings from environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field.
func (s Settings) Validate() error {
	const op = "Settings"
	if _, err := BuiltinTiles(s.Tiles); err != nil {
		return invalidArg(op, "tiles", s.Tiles, fmt.Sprintf("must be one of %v", BuiltinTileProviders()))
	}
	if err := validateAlpha(op, s.MapAlpha); err != nil {
		return err
	}
	if s.WindowWidth < 0 || s.WindowHeight < 0 {
		return invalidArg(op, "window size", fmt.Sprintf("%dx%d", s.WindowWidth, s.WindowHeight), "must not be negative")
	}
	if !slices.Contains([]string{"", "debug", "info", "warn", "error"}, strings.ToLower(s.LogLevel)) {
		return invalidArg(op, "log_level", s.LogLevel, "must be one of debug, info, warn, error")
	}
	if !slices.Contains([]string{"", "text", "json"}, strings.ToLower(s.LogFormat)) {
		return invalidArg(op, "log_format", s.LogFormat, "must be text or json")
	}
	return nil
}

// Encode writes the settings as TOML.
func (s Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Logger builds a structured logger writing to w with the configured level
// and format.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(s.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "geoplot")
}
