// Package config holds the runtime settings of the presentation loop.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/Carmen-Shannon/fever/engine/profiler"
	"github.com/Carmen-Shannon/fever/engine/renderer"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "FEVER_"

// Config is the full set of runtime settings. Defaults come from Default, then
// environment variables (FromEnv), then command-line flags.
type Config struct {
	Title     string
	Width     int
	Height    int
	Maximized bool

	// PresentMode is "vsync" or "uncapped".
	PresentMode string

	// ForceFallbackAdapter requests a software adapter.
	ForceFallbackAdapter bool

	// LogLevel is the slog level name: debug, info, warn or error.
	LogLevel string

	// GPULogLevel is the native wgpu log level: off, error, warn, info, debug or trace.
	GPULogLevel string

	// ProfileMode is off, cpu or mem.
	ProfileMode string
	ProfileDir  string

	// ShaderDir overrides the embedded shaders when set.
	ShaderDir string

	ClearColor common.Color

	// StatsInterval is how often frame statistics are logged; zero disables them.
	StatsInterval time.Duration

	// MaxDelta caps a single tick's delta; zero disables the cap.
	MaxDelta time.Duration
}

// Default returns the built-in settings.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Title:       "Fever",
		Width:       800,
		Height:      600,
		Maximized:   true,
		PresentMode: renderer.PresentModeVSync.String(),
		LogLevel:    "info",
		GPULogLevel: "warn",
		ProfileMode: string(profiler.ModeOff),
		ClearColor:  common.ColorGreen,
		MaxDelta:    250 * time.Millisecond,
	}
}

// FromEnv overlays FEVER_* environment variables onto c.
//
// Parameters:
//   - c: the configuration to start from
//
// Returns:
//   - Config: the overlaid configuration
//   - error: every malformed variable, joined
func FromEnv(c Config) (Config, error) {
	return FromLookup(c, os.LookupEnv)
}

// FromLookup overlays variables resolved by lookup onto c. Names are given without EnvPrefix.
//
// Parameters:
//   - c: the configuration to start from
//   - lookup: resolves a full variable name, as os.LookupEnv
//
// Returns:
//   - Config: the overlaid configuration
//   - error: every malformed variable, joined
func FromLookup(c Config, lookup func(string) (string, bool)) (Config, error) {
	var errs []error
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	setDuration := func(name string, dst *time.Duration) {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	setString("TITLE", &c.Title)
	setInt("WIDTH", &c.Width)
	setInt("HEIGHT", &c.Height)
	setBool("MAXIMIZED", &c.Maximized)
	setString("PRESENT_MODE", &c.PresentMode)
	setBool("FORCE_FALLBACK_ADAPTER", &c.ForceFallbackAdapter)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("GPU_LOG_LEVEL", &c.GPULogLevel)
	setString("PROFILE", &c.ProfileMode)
	setString("PROFILE_DIR", &c.ProfileDir)
	setString("SHADER_DIR", &c.ShaderDir)
	setDuration("STATS_INTERVAL", &c.StatsInterval)
	setDuration("MAX_DELTA", &c.MaxDelta)
	if v, ok := get("CLEAR_COLOR"); ok {
		col, err := common.ParseColor(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sCLEAR_COLOR: %w", EnvPrefix, err))
		} else {
			c.ClearColor = col
		}
	}

	return c, errors.Join(errs...)
}

// Validate checks that every setting is usable.
//
// Returns:
//   - error: every invalid setting, joined
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if _, err := renderer.ParsePresentMode(c.PresentMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := profiler.ParseMode(c.ProfileMode); err != nil {
		errs = append(errs, err)
	}
	if c.StatsInterval < 0 || c.MaxDelta < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
//
// Returns:
//   - slog.Level: the level
//   - error: an error for unknown names
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
