// Package constants defines shared constants, types, and configuration values
// used throughout the sectiondeck packages.
package constants

import (
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the hosts.
const (
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
	ConfigPathEnvVar   = "SECTIONDECK_CONFIG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Key is an abstract navigation key, mapped from physical keys, buttons or
// terminal key strings by the hosts.
type Key int

const (
	KeyNone Key = iota
	KeyNext
	KeyPrevious
	KeyFirst
	KeyLast
	KeyHold
	KeyConfirm
	KeyCancel
	KeyCustomize
	KeyLanguage
	KeyConsent
	KeyQuit
)

func (k Key) GetName() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyNext:
		return "Next"
	case KeyPrevious:
		return "Previous"
	case KeyFirst:
		return "First"
	case KeyLast:
		return "Last"
	case KeyHold:
		return "Hold"
	case KeyConfirm:
		return "Confirm"
	case KeyCancel:
		return "Cancel"
	case KeyCustomize:
		return "Customize"
	case KeyLanguage:
		return "Language"
	case KeyConsent:
		return "Consent"
	case KeyQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the key moves between sections.
func (k Key) IsDirectional() bool {
	return k == KeyNext || k == KeyPrevious || k == KeyFirst || k == KeyLast
}

// LayoutMode selects how a deck of sections is navigated. The zero value is
// the paged deck.
type LayoutMode int

const (
	LayoutPagedDeck    LayoutMode = iota // Horizontal, one panel per transition
	LayoutLinearScroll                   // Vertical, visibility-driven
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutLinearScroll:
		return "linear-scroll"
	case LayoutPagedDeck:
		return "paged-deck"
	default:
		return "unknown"
	}
}

// ParseLayoutMode accepts the config names as well as the historical
// "vertical"/"horizontal" names.
func ParseLayoutMode(raw string) (LayoutMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "linear-scroll", "linear", "vertical":
		return LayoutLinearScroll, true
	case "paged-deck", "paged", "horizontal", "":
		return LayoutPagedDeck, true
	default:
		return LayoutPagedDeck, false
	}
}

// Default timing and threshold constants.
const (
	DefaultTransitionDuration  = 750 * time.Millisecond
	DefaultIndicatorDuration   = 5 * time.Second
	DefaultHoldDuration        = 1000 * time.Millisecond
	DefaultConsentDelay        = 1 * time.Second
	DefaultWheelThreshold      = 30.0
	DefaultSwipeThreshold      = 50.0
	DefaultVisibilityThreshold = 0.5
)

// Storage keys shared with the web build of the site.
const (
	ConsentStorageKey  = "stw-cookie-consent"
	LanguageStorageKey = "la-lang"
)
