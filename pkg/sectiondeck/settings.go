package sectiondeck

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
)

// Settings configures a Controller. Zero values take the defaults below.
type Settings struct {
	Layout              constants.LayoutMode
	TransitionDuration  time.Duration // Lock window after an accepted transition
	WheelThreshold      float64       // Minimum wheel delta that navigates
	SwipeThreshold      float64       // Minimum dominant-axis swipe distance
	VisibilityThreshold float64       // Visible fraction that makes a panel current
	AccumulateWheel     bool          // Sum same-direction sub-threshold wheel deltas
	Indicator           IndicatorSettings

	// InView reports whether the deck currently covers the middle of the
	// viewport. Keyboard input is ignored while it returns false.
	InView func() bool

	Binder InputBinder
	Clock  Clock
	Logger *slog.Logger
}

// IndicatorSettings configures the first-visit scroll hint.
type IndicatorSettings struct {
	Disabled bool
	Duration time.Duration
}

// DefaultSettings returns the settings the site ships with.
func DefaultSettings() Settings {
	return Settings{
		Layout:              constants.LayoutPagedDeck,
		TransitionDuration:  constants.DefaultTransitionDuration,
		WheelThreshold:      constants.DefaultWheelThreshold,
		SwipeThreshold:      constants.DefaultSwipeThreshold,
		VisibilityThreshold: constants.DefaultVisibilityThreshold,
		Indicator: IndicatorSettings{
			Duration: constants.DefaultIndicatorDuration,
		},
	}
}

func (s Settings) resolve() (Settings, error) {
	switch s.Layout {
	case constants.LayoutLinearScroll, constants.LayoutPagedDeck:
	default:
		return s, invalid("layout", s.Layout)
	}

	if s.TransitionDuration < 0 {
		return s, invalid("transition_duration", s.TransitionDuration)
	}
	if s.TransitionDuration == 0 {
		s.TransitionDuration = constants.DefaultTransitionDuration
	}

	if s.WheelThreshold < 0 {
		return s, invalid("wheel_threshold", s.WheelThreshold)
	}
	if s.WheelThreshold == 0 {
		s.WheelThreshold = constants.DefaultWheelThreshold
	}

	if s.SwipeThreshold < 0 {
		return s, invalid("swipe_threshold", s.SwipeThreshold)
	}
	if s.SwipeThreshold == 0 {
		s.SwipeThreshold = constants.DefaultSwipeThreshold
	}

	if s.VisibilityThreshold < 0 || s.VisibilityThreshold > 1 {
		return s, invalid("visibility_threshold", s.VisibilityThreshold)
	}
	if s.VisibilityThreshold == 0 {
		s.VisibilityThreshold = constants.DefaultVisibilityThreshold
	}

	if s.Indicator.Duration < 0 {
		return s, invalid("indicator_duration", s.Indicator.Duration)
	}
	if s.Indicator.Duration == 0 {
		s.Indicator.Duration = constants.DefaultIndicatorDuration
	}

	if s.InView == nil {
		s.InView = func() bool { return true }
	}
	if s.Clock == nil {
		s.Clock = SystemClock
	}
	if s.Logger == nil {
		s.Logger = internal.GetInternalLogger()
	}

	return s, nil
}
