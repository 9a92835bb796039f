package internal

import (
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
)

// Direction represents a step through the deck.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionPrevious
	DirectionNext
)

// DirectionalInput tracks held navigation keys and handles repeat timing.
// Hosts embed this so a held arrow keeps asking for the next section; the
// controller's transition lock decides how many of those asks land.
type DirectionalInput struct {
	held struct {
		previous, next bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewDirectionalInput creates a DirectionalInput with default timing.
// Default delay is 300ms before first repeat, then 50ms between repeats.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

// NewDirectionalInputWithTiming creates a DirectionalInput with custom timing.
func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (d *DirectionalInput) SetClock(now func() time.Time) {
	d.now = now
	d.lastRepeatTime = now()
}

// SetHeld updates the held state for a key.
// Returns true if the key was a repeatable direction.
func (d *DirectionalInput) SetHeld(key constants.Key, held bool) bool {
	switch key {
	case constants.KeyPrevious:
		d.held.previous = held
	case constants.KeyNext:
		d.held.next = held
	default:
		return false
	}
	if held {
		d.lastRepeatTime = d.now()
	} else {
		d.hasRepeated = false
	}
	return true
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalInput) IsHeld() bool {
	return d.held.previous || d.held.next
}

// HeldDirection returns the currently held direction.
// If both are held, previous wins.
func (d *DirectionalInput) HeldDirection() Direction {
	if d.held.previous {
		return DirectionPrevious
	}
	if d.held.next {
		return DirectionNext
	}
	return DirectionNone
}

// Update checks if a repeat event should fire based on timing.
// Call this every frame. It returns the direction that should be processed,
// or DirectionNone if no repeat should occur.
//
// The first repeat occurs after repeatDelay, subsequent repeats after repeatInterval.
func (d *DirectionalInput) Update() Direction {
	if !d.IsHeld() {
		d.lastRepeatTime = d.now()
		d.hasRepeated = false
		return DirectionNone
	}

	timeSince := d.now().Sub(d.lastRepeatTime)

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if timeSince >= threshold {
		d.lastRepeatTime = d.now()
		d.hasRepeated = true
		return d.HeldDirection()
	}

	return DirectionNone
}

// Reset clears all held directions and timing state.
func (d *DirectionalInput) Reset() {
	d.held.previous = false
	d.held.next = false
	d.hasRepeated = false
	d.lastRepeatTime = d.now()
}

// Key returns the navigation key for a Direction.
func (d Direction) Key() constants.Key {
	switch d {
	case DirectionPrevious:
		return constants.KeyPrevious
	case DirectionNext:
		return constants.KeyNext
	default:
		return constants.KeyNone
	}
}

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionPrevious:
		return "previous"
	case DirectionNext:
		return "next"
	default:
		return ""
	}
}
