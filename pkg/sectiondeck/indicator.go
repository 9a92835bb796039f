package sectiondeck

import (
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
)

// Message IDs for the indicator copy, resolved by the i18n package.
const (
	IndicatorHorizontalMessage = "IndicatorHorizontal"
	IndicatorVerticalMessage   = "IndicatorVertical"
)

// ScrollIndicator is the "keep scrolling" hint shown the first time a deck
// appears on its first panel. Any interaction dismisses it for good; left
// alone it hides itself after its duration.
type ScrollIndicator struct {
	layout     constants.LayoutMode
	duration   time.Duration
	disabled   bool
	clock      Clock
	shown      bool
	until      time.Time
	interacted bool
}

// NewScrollIndicator creates a hidden indicator.
func NewScrollIndicator(layout constants.LayoutMode, settings IndicatorSettings, clock Clock) *ScrollIndicator {
	if clock == nil {
		clock = SystemClock
	}
	if settings.Duration <= 0 {
		settings.Duration = constants.DefaultIndicatorDuration
	}
	return &ScrollIndicator{
		layout:   layout,
		duration: settings.Duration,
		disabled: settings.Disabled,
		clock:    clock,
	}
}

// Trigger shows the hint unless the user already interacted. A repeated
// trigger restarts the hide deadline.
func (si *ScrollIndicator) Trigger() {
	if si.disabled || si.interacted {
		return
	}
	si.shown = true
	si.until = si.clock.Now().Add(si.duration)
}

// Dismiss records the first interaction and hides the hint.
func (si *ScrollIndicator) Dismiss() {
	if si.interacted {
		return
	}
	si.interacted = true
	si.shown = false
	si.until = time.Time{}
}

// Visible reports whether the hint should be drawn now.
func (si *ScrollIndicator) Visible() bool {
	return si.shown && si.clock.Now().Before(si.until)
}

// Interacted reports whether the hint has been dismissed by input.
func (si *ScrollIndicator) Interacted() bool {
	return si.interacted
}

// MessageID returns the i18n message for the current layout.
func (si *ScrollIndicator) MessageID() string {
	if si.layout == constants.LayoutPagedDeck {
		return IndicatorHorizontalMessage
	}
	return IndicatorVerticalMessage
}

func (si *ScrollIndicator) reset() {
	si.shown = false
	si.until = time.Time{}
}
