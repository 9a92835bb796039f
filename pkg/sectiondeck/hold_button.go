package sectiondeck

import (
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
)

// HoldButton is the press-and-hold "next" control placed inside a section.
// A press that is held for the full duration runs the action once; letting
// go early cancels it.
type HoldButton struct {
	active   func() bool
	action   func()
	duration time.Duration
	clock    Clock

	pressed   bool
	pressedAt time.Time
	// set while a keyboard press owns the button, so key repeats are swallowed
	keyHeld bool
}

// NewHoldButton creates a button. active is consulted before a press starts;
// pass Controller.ActiveQuery(sectionIndex).
func NewHoldButton(active func() bool, action func(), duration time.Duration, clock Clock) *HoldButton {
	if active == nil {
		active = func() bool { return true }
	}
	if duration <= 0 {
		duration = constants.DefaultHoldDuration
	}
	if clock == nil {
		clock = SystemClock
	}
	return &HoldButton{
		active:   active,
		action:   action,
		duration: duration,
		clock:    clock,
	}
}

// Press starts a pointer press. It returns false when the button is not
// active or already pressed.
func (hb *HoldButton) Press() bool {
	if hb.pressed || !hb.active() {
		return false
	}
	hb.pressed = true
	hb.pressedAt = hb.clock.Now()
	return true
}

// KeyDown handles the hold key. It returns true when the key belongs to
// this button and the host should not use it for anything else.
func (hb *HoldButton) KeyDown(repeat bool) bool {
	if hb.keyHeld {
		return true
	}
	if repeat || !hb.Press() {
		return false
	}
	hb.keyHeld = true
	return true
}

// KeyUp releases a keyboard press.
func (hb *HoldButton) KeyUp() {
	hb.keyHeld = false
	hb.Release()
}

// Release cancels an incomplete press.
func (hb *HoldButton) Release() {
	hb.pressed = false
	hb.pressedAt = time.Time{}
}

// Pressed reports whether a press is in progress.
func (hb *HoldButton) Pressed() bool {
	return hb.pressed
}

// Progress returns how far the current press is, from 0 to 1.
func (hb *HoldButton) Progress() float64 {
	if !hb.pressed {
		return 0
	}
	p := float64(hb.clock.Now().Sub(hb.pressedAt)) / float64(hb.duration)
	if p > 1 {
		return 1
	}
	return p
}

// Update completes the press once it has been held long enough. Hosts call
// it every frame; it returns true on the frame the action ran.
func (hb *HoldButton) Update() bool {
	if !hb.pressed || hb.clock.Now().Sub(hb.pressedAt) < hb.duration {
		return false
	}
	hb.pressed = false
	hb.pressedAt = time.Time{}
	if hb.action != nil {
		hb.action()
	}
	return true
}
