package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
layout = "horizontal"
language = "es"

[navigation]
transition_ms = 500
wheel_threshold = 40
accumulate_wheel = true

[indicator]
duration_ms = 3000

[hold_button]
duration_ms = 1500

[logging]
level = "debug"

[input]
touch_device = "/dev/input/event1"
repeat_delay_ms = 250

[keys]
next = ["Right", "D"]
quit = ["Escape"]

[[panels]]
title = "Hello"
background = "#102030"

[[panels]]
title = "Bye"
hold = true
`

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, constants.LayoutPagedDeck, cfg.LayoutMode())
	assert.Equal(t, sectiondeck.DefaultSettings(), cfg.Settings())
	assert.Equal(t, constants.DefaultHoldDuration, cfg.HoldDuration())
	assert.Equal(t, constants.DefaultConsentDelay, cfg.ConsentDelay())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, constants.LayoutPagedDeck, cfg.LayoutMode())
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "error", cfg.Logging.InternalLevel, "unset fields keep defaults")
	assert.Equal(t, "/dev/input/event1", cfg.Input.TouchDevice)

	s := cfg.Settings()
	assert.Equal(t, 500*time.Millisecond, s.TransitionDuration)
	assert.Equal(t, 40.0, s.WheelThreshold)
	assert.Equal(t, constants.DefaultSwipeThreshold, s.SwipeThreshold)
	assert.True(t, s.AccumulateWheel)
	assert.Equal(t, 3*time.Second, s.Indicator.Duration)
	assert.Equal(t, 1500*time.Millisecond, cfg.HoldDuration())

	delay, interval := cfg.RepeatTiming()
	assert.Equal(t, 250*time.Millisecond, delay)
	assert.Zero(t, interval)

	keys := cfg.KeyBindings()
	assert.Equal(t, []string{"Right", "D"}, keys[constants.KeyNext])
	assert.Equal(t, []string{"Escape"}, keys[constants.KeyQuit])

	require.Len(t, cfg.Panels, 2)
	assert.True(t, cfg.Panels[1].Hold)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]struct {
		data  string
		field string
	}{
		"layout":      {`layout = "diagonal"`, "layout"},
		"negative":    {"[navigation]\ntransition_ms = -1", "navigation.transition_ms"},
		"visibility":  {"[navigation]\nvisibility_threshold = 1.5", "navigation.visibility_threshold"},
		"key action":  {"[keys]\njump = [\"J\"]", "keys.jump"},
		"color":       {"[[panels]]\nbackground = \"#12\"", "panels[0].background"},
		"unknown key": {"colour = 1", "colour"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse(Default(), tc.data)
			var cfgErr *sectiondeck.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	err := Parse(Default(), "layout = ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a1B2c")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x0a, G: 0x1b, B: 0x2c}, c)

	_, err = ParseColor("zzzzzz")
	assert.Error(t, err)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(constants.ConfigPathEnvVar, "/etc/deck.toml")
	assert.Equal(t, "/etc/deck.toml", Path("deck.toml"))

	t.Setenv(constants.ConfigPathEnvVar, "")
	assert.Equal(t, "deck.toml", Path("deck.toml"))
}
