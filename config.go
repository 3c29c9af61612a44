package reel

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config holds the startup constants of a loop. It is read once and never
// reloaded.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// TickMS is the tick period in milliseconds.
	TickMS int `yaml:"tick_ms"`
	Layers int `yaml:"layers"`

	Background Color  `yaml:"background"`
	Title      string `yaml:"title"`

	// Debug logs per-frame render stats.
	Debug bool `yaml:"debug"`
	// ShowFPS draws an FPS/TPS overlay when hosted by Ebitengine.
	ShowFPS bool `yaml:"show_fps"`
	// ScreenshotDir receives PNGs requested through Loop.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultConfig returns a 640x480 viewport ticking every 16ms with three
// layers over a light grey background.
func DefaultConfig() Config {
	return Config{
		Width:         640,
		Height:        480,
		TickMS:        16,
		Layers:        3,
		Background:    Color{color.RGBA{R: 240, G: 240, B: 240, A: 255}},
		Title:         "reel",
		ScreenshotDir: "screenshots",
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("reel: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reel: load %s: %w", filename, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("reel: load %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("reel: config: viewport %dx%d must be positive", c.Width, c.Height)
	case c.TickMS <= 0:
		return fmt.Errorf("reel: config: tick_ms %d must be positive", c.TickMS)
	case c.Layers <= 0:
		return fmt.Errorf("reel: config: layers %d must be positive", c.Layers)
	}
	return nil
}

// TickPeriod returns TickMS as a duration.
func (c Config) TickPeriod() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// TPS returns the ticks per second implied by TickMS, at least 1.
func (c Config) TPS() int {
	if c.TickMS <= 0 {
		return 1
	}
	return max(1000/c.TickMS, 1)
}

// Color is a YAML colour: "#rrggbb", "#rrggbbaa" or an SVG colour name
// such as "whitesmoke". The zero value means no background fill.
type Color struct {
	color.Color
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor parses a hex colour or a colour name. An empty string or "none"
// yields nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	if !strings.HasPrefix(s, "#") {
		if named, ok := colornames.Map[strings.ToLower(s)]; ok {
			return named, nil
		}
		return nil, fmt.Errorf("unknown color name %q", s)
	}

	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}
	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}
	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color format: %s", s)
		}
		rgba[i] = v
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
