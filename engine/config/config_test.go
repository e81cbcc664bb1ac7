package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/fever/common"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if c.Title != "Fever" || !c.Maximized || c.ClearColor != common.ColorGreen {
		t.Errorf("Default() = %+v", c)
	}
}

func TestFromLookup(t *testing.T) {
	c, err := FromLookup(Default(), lookup(map[string]string{
		"FEVER_TITLE":                  "Demo",
		"FEVER_WIDTH":                  " 1024 ",
		"FEVER_HEIGHT":                 "768",
		"FEVER_MAXIMIZED":              "false",
		"FEVER_PRESENT_MODE":           "uncapped",
		"FEVER_FORCE_FALLBACK_ADAPTER": "1",
		"FEVER_LOG_LEVEL":              "debug",
		"FEVER_PROFILE":                "cpu",
		"FEVER_STATS_INTERVAL":         "2s",
		"FEVER_CLEAR_COLOR":            "0,0,0",
		"OTHER_WIDTH":                  "1",
	}))
	if err != nil {
		t.Fatalf("FromLookup error: %v", err)
	}
	if c.Title != "Demo" || c.Width != 1024 || c.Height != 768 || c.Maximized {
		t.Errorf("window settings = %q %dx%d maximized=%v", c.Title, c.Width, c.Height, c.Maximized)
	}
	if c.PresentMode != "uncapped" || !c.ForceFallbackAdapter || c.ProfileMode != "cpu" {
		t.Errorf("config = %+v", c)
	}
	if c.StatsInterval != 2*time.Second {
		t.Errorf("StatsInterval = %v", c.StatsInterval)
	}
	if c.ClearColor != common.ColorBlack {
		t.Errorf("ClearColor = %+v", c.ClearColor)
	}
	if l, err := c.SlogLevel(); err != nil || l != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", l, err)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestFromLookupErrors(t *testing.T) {
	base := Default()
	c, err := FromLookup(base, lookup(map[string]string{
		"FEVER_WIDTH":          "wide",
		"FEVER_MAXIMIZED":      "maybe",
		"FEVER_STATS_INTERVAL": "soon",
		"FEVER_CLEAR_COLOR":    "red",
	}))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, name := range []string{"FEVER_WIDTH", "FEVER_MAXIMIZED", "FEVER_STATS_INTERVAL", "FEVER_CLEAR_COLOR"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
	if c.Width != base.Width || c.ClearColor != base.ClearColor {
		t.Errorf("malformed values were applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"present mode", func(c *Config) { c.PresentMode = "triple" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"profile", func(c *Config) { c.ProfileMode = "trace" }},
		{"negative interval", func(c *Config) { c.StatsInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() error = nil")
			}
		})
	}
}
