// Package config loads the deck's TOML configuration.
//
// Every field is optional. A missing file yields Default(); durations are
// written in milliseconds.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BurntSushi/toml"
)

// Config is the parsed configuration file.
type Config struct {
	Layout     string     `toml:"layout"`
	Language   string     `toml:"language"`
	Navigation Navigation `toml:"navigation"`
	Indicator  Indicator  `toml:"indicator"`
	HoldButton HoldButton `toml:"hold_button"`
	Consent    Consent    `toml:"consent"`
	Logging    Logging    `toml:"logging"`
	Storage    Storage    `toml:"storage"`
	Input      Input      `toml:"input"`
	Window     Window     `toml:"window"`

	// Keys maps an action name ("next", "previous", "hold", ...) to the
	// host key names that trigger it. Listed actions replace the host's
	// defaults for that action.
	Keys map[string][]string `toml:"keys"`

	Panels []Panel `toml:"panels"`

	layout constants.LayoutMode
}

type Navigation struct {
	TransitionMS        int     `toml:"transition_ms"`
	WheelThreshold      float64 `toml:"wheel_threshold"`
	SwipeThreshold      float64 `toml:"swipe_threshold"`
	VisibilityThreshold float64 `toml:"visibility_threshold"`
	AccumulateWheel     bool    `toml:"accumulate_wheel"`
}

type Indicator struct {
	Disabled   bool `toml:"disabled"`
	DurationMS int  `toml:"duration_ms"`
}

type HoldButton struct {
	DurationMS int `toml:"duration_ms"`
}

type Consent struct {
	DelayMS int `toml:"delay_ms"`
}

type Logging struct {
	Level         string `toml:"level"`
	InternalLevel string `toml:"internal_level"`
	Path          string `toml:"path"`
}

type Storage struct {
	Path string `toml:"path"`
}

// Input configures the SDL host's input devices.
type Input struct {
	TouchDevice      string `toml:"touch_device"` // evdev node, e.g. /dev/input/event1
	RepeatDelayMS    int    `toml:"repeat_delay_ms"`
	RepeatIntervalMS int    `toml:"repeat_interval_ms"`
}

type Window struct {
	Title    string `toml:"title"`
	Width    int32  `toml:"width"`
	Height   int32  `toml:"height"`
	FontPath string `toml:"font_path"`
	FontSize int    `toml:"font_size"`
}

// Panel is one section of the deck.
type Panel struct {
	Title      string `toml:"title"`
	Subtitle   string `toml:"subtitle"`
	Body       string `toml:"body"`
	Background string `toml:"background"` // #RRGGBB
	Image      string `toml:"image"`
	Hold       bool   `toml:"hold"` // Show the hold-to-advance button
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Layout:   constants.LayoutPagedDeck.String(),
		Language: "en",
		Logging: Logging{
			Level:         "info",
			InternalLevel: "error",
			Path:          "logs/sectiondeck.log",
		},
		Storage: Storage{Path: "data/preferences.db"},
		Window: Window{
			Title:    "sectiondeck",
			Width:    1024,
			Height:   768,
			FontSize: 28,
		},
		layout: constants.LayoutPagedDeck,
	}
}

// Path returns the config path from SECTIONDECK_CONFIG, or fallback.
func Path(fallback string) string {
	if p := os.Getenv(constants.ConfigPathEnvVar); p != "" {
		return p
	}
	return fallback
}

// Load reads and validates the file at path. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return cfg, Parse(cfg, string(data))
}

// Parse decodes data over cfg and validates the result.
func Parse(cfg *Config, data string) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &sectiondeck.ConfigError{
			Field: undecoded[0].String(),
			Value: "?",
			Err:   errors.New("unknown key"),
		}
	}
	return cfg.Validate()
}

// Validate checks every field that has a restricted range.
func (c *Config) Validate() error {
	layout, ok := constants.ParseLayoutMode(c.Layout)
	if !ok {
		return invalid("layout", c.Layout)
	}
	c.layout = layout

	checks := []struct {
		field string
		value int
	}{
		{"navigation.transition_ms", c.Navigation.TransitionMS},
		{"indicator.duration_ms", c.Indicator.DurationMS},
		{"hold_button.duration_ms", c.HoldButton.DurationMS},
		{"consent.delay_ms", c.Consent.DelayMS},
		{"input.repeat_delay_ms", c.Input.RepeatDelayMS},
		{"input.repeat_interval_ms", c.Input.RepeatIntervalMS},
	}
	for _, chk := range checks {
		if chk.value < 0 {
			return invalid(chk.field, chk.value)
		}
	}

	if c.Navigation.WheelThreshold < 0 {
		return invalid("navigation.wheel_threshold", c.Navigation.WheelThreshold)
	}
	if c.Navigation.SwipeThreshold < 0 {
		return invalid("navigation.swipe_threshold", c.Navigation.SwipeThreshold)
	}
	if v := c.Navigation.VisibilityThreshold; v < 0 || v > 1 {
		return invalid("navigation.visibility_threshold", v)
	}

	for action := range c.Keys {
		if _, ok := ParseKey(action); !ok {
			return invalid("keys."+action, action)
		}
	}

	for i, p := range c.Panels {
		if p.Background == "" {
			continue
		}
		if _, err := ParseColor(p.Background); err != nil {
			return invalid(fmt.Sprintf("panels[%d].background", i), p.Background)
		}
	}

	return nil
}

func invalid(field string, value any) error {
	return &sectiondeck.ConfigError{Field: field, Value: value, Err: sectiondeck.ErrInvalidValue}
}

// LayoutMode returns the validated layout.
func (c *Config) LayoutMode() constants.LayoutMode {
	return c.layout
}

// Settings converts the file into controller settings. Host-specific fields
// (Binder, InView, Clock, Logger) are left for the host to fill.
func (c *Config) Settings() sectiondeck.Settings {
	s := sectiondeck.DefaultSettings()
	s.Layout = c.layout
	s.AccumulateWheel = c.Navigation.AccumulateWheel
	s.Indicator.Disabled = c.Indicator.Disabled

	if c.Navigation.TransitionMS > 0 {
		s.TransitionDuration = ms(c.Navigation.TransitionMS)
	}
	if c.Navigation.WheelThreshold > 0 {
		s.WheelThreshold = c.Navigation.WheelThreshold
	}
	if c.Navigation.SwipeThreshold > 0 {
		s.SwipeThreshold = c.Navigation.SwipeThreshold
	}
	if c.Navigation.VisibilityThreshold > 0 {
		s.VisibilityThreshold = c.Navigation.VisibilityThreshold
	}
	if c.Indicator.DurationMS > 0 {
		s.Indicator.Duration = ms(c.Indicator.DurationMS)
	}
	return s
}

// HoldDuration returns the hold button duration.
func (c *Config) HoldDuration() time.Duration {
	if c.HoldButton.DurationMS > 0 {
		return ms(c.HoldButton.DurationMS)
	}
	return constants.DefaultHoldDuration
}

// ConsentDelay returns the wait before the cookie banner appears.
func (c *Config) ConsentDelay() time.Duration {
	if c.Consent.DelayMS > 0 {
		return ms(c.Consent.DelayMS)
	}
	return constants.DefaultConsentDelay
}

// RepeatTiming returns the held-key repeat delay and interval. Zero means
// the host default.
func (c *Config) RepeatTiming() (delay, interval time.Duration) {
	return ms(c.Input.RepeatDelayMS), ms(c.Input.RepeatIntervalMS)
}

// KeyBindings returns the configured key names per action.
func (c *Config) KeyBindings() map[constants.Key][]string {
	out := make(map[constants.Key][]string, len(c.Keys))
	for action, names := range c.Keys {
		if k, ok := ParseKey(action); ok {
			out[k] = names
		}
	}
	return out
}

// ParseKey maps a config action name to a Key.
func ParseKey(name string) (constants.Key, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "next":
		return constants.KeyNext, true
	case "previous", "prev":
		return constants.KeyPrevious, true
	case "first", "home":
		return constants.KeyFirst, true
	case "last", "end":
		return constants.KeyLast, true
	case "hold":
		return constants.KeyHold, true
	case "confirm":
		return constants.KeyConfirm, true
	case "cancel":
		return constants.KeyCancel, true
	case "customize":
		return constants.KeyCustomize, true
	case "language":
		return constants.KeyLanguage, true
	case "consent", "cookies":
		return constants.KeyConsent, true
	case "quit":
		return constants.KeyQuit, true
	default:
		return constants.KeyNone, false
	}
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(raw string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", raw)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", raw, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
