// Package config holds the immutable run configuration, assembled once in
// main from the environment and global flags and passed down by value.
package config

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/cargo-binutils/internal/errors"
)

// Environment variables consulted by Load.
const (
	EnvCargo     = "CARGO"
	EnvRustc     = "RUSTC"
	EnvLog       = "CARGO_BINUTILS_LOG"
	EnvTermColor = "CARGO_TERM_COLOR"
)

// LogLevel is an explicit log level override.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = newEnum("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
})

// ColorMode controls colored output, with cargo's spelling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var colorModes = newEnum("color mode", map[string]ColorMode{
	"auto":   ColorAuto,
	"always": ColorAlways,
	"never":  ColorNever,
})

// Config is the run configuration.
type Config struct {
	Cargo string
	Rustc string
	// LogLevel overrides the verbosity-derived level when set.
	LogLevel LogLevel
	Color    ColorMode
	// ColorSet records whether Color was chosen explicitly (flag or env).
	ColorSet    bool
	WorkDir     string
	MetricsFile string
}

// Option adjusts a Config during Load.
type Option func(*Config) error

// WithColor applies a --color value; empty keeps the environment's choice.
func WithColor(raw string) Option {
	return func(c *Config) error {
		if raw == "" {
			return nil
		}
		mode, err := colorModes.parse(raw)
		if err != nil {
			return errors.ValidationFailed("color", err.Error())
		}
		c.Color, c.ColorSet = mode, true
		return nil
	}
}

// WithMetricsFile sets the Prometheus textfile destination.
func WithMetricsFile(path string) Option {
	return func(c *Config) error {
		c.MetricsFile = path
		return nil
	}
}

// Load builds the configuration from getenv (os.Getenv when nil) and opts.
func Load(getenv func(string) string, opts ...Option) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Config{
		Cargo: orDefault(getenv(EnvCargo), "cargo"),
		Rustc: orDefault(getenv(EnvRustc), "rustc"),
		Color: ColorAuto,
	}
	if raw := getenv(EnvLog); raw != "" {
		lvl, err := logLevels.parse(raw)
		if err != nil {
			return Config{}, errors.ValidationFailed(EnvLog, err.Error())
		}
		cfg.LogLevel = lvl
	}
	if raw := getenv(EnvTermColor); raw != "" {
		if err := WithColor(raw)(&cfg); err != nil {
			return Config{}, err
		}
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.WorkDir = wd
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// SlogLevel is the effective log level: the explicit override, else warn,
// info at -v and debug at -vv.
func (c Config) SlogLevel(verbose int) slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	switch {
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// UseColor decides whether output to f is colored.
func (c Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CargoColor is the --color value forwarded to cargo; empty when the user
// made no explicit choice so cargo applies its own detection.
func (c Config) CargoColor() string {
	if !c.ColorSet {
		return ""
	}
	return string(c.Color)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
