// Package sectiondeck provides the navigation controller behind a
// scroll-driven deck of full-viewport sections, plus the small widgets that
// observe it (side nav, hold-to-advance button, scroll indicator).
//
// A Controller owns the current section index. Hosts (see the platform
// packages) feed it wheel, touch, keyboard and visibility input from a single
// UI goroutine and render whatever it reports. Navigation never fails:
// out-of-range targets are clamped and input that arrives during a
// transition is dropped.
package sectiondeck

import (
	"log/slog"
	"math"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
	"go.uber.org/atomic"
)

// State is the transition state of a Controller.
type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	if s == StateTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Controller translates input into rate-limited section transitions and
// broadcasts the resulting index. It is not safe for concurrent use; Close
// may be called any number of times.
type Controller struct {
	panels   []Panel
	settings Settings
	clock    Clock
	logger   *slog.Logger

	index       int
	previous    int
	lockedAt    time.Time
	unlockAt    time.Time
	accumulator float64

	touching   bool
	touchStart Point

	// intersecting holds, per panel, whether the last visibility report was
	// at or above the threshold. Only crossings are acted on.
	intersecting []bool

	listeners   Listener
	unbind      func()
	subscribers []subscription
	nextSubID   int

	indicator *ScrollIndicator
	closed    atomic.Bool
}

// New creates a controller over panels. Panel 0 is marked active and the
// listeners for the layout are registered through settings.Binder.
func New(panels []Panel, settings Settings) (*Controller, error) {
	resolved, err := settings.resolve()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		panels:       append([]Panel(nil), panels...),
		settings:     resolved,
		clock:        resolved.Clock,
		logger:       resolved.Logger,
		listeners:    ListenersFor(resolved.Layout),
		intersecting: make([]bool, len(panels)),
		indicator:    NewScrollIndicator(resolved.Layout, resolved.Indicator, resolved.Clock),
	}

	if len(c.panels) > 0 {
		c.panels[0].SetActive(true)
	}

	if resolved.Binder != nil {
		c.unbind = resolved.Binder.Bind(c, c.listeners)
	}

	c.logger.Debug("Section controller ready",
		"layout", resolved.Layout.String(),
		"panels", len(c.panels),
		"transition", resolved.TransitionDuration)

	return c, nil
}

// Current returns the current section index. It is 0 for an empty deck.
func (c *Controller) Current() int {
	return c.index
}

// Total returns the number of sections.
func (c *Controller) Total() int {
	return len(c.panels)
}

// Layout returns the layout the controller was created with.
func (c *Controller) Layout() constants.LayoutMode {
	return c.settings.Layout
}

// Listeners returns the input channels the controller currently consumes.
// It is empty after Close.
func (c *Controller) Listeners() Listener {
	return c.listeners
}

// Indicator returns the first-visit scroll hint.
func (c *Controller) Indicator() *ScrollIndicator {
	return c.indicator
}

// Locked reports whether a transition is in flight.
func (c *Controller) Locked() bool {
	return c.clock.Now().Before(c.unlockAt)
}

// State returns Idle or Transitioning.
func (c *Controller) State() State {
	if c.Locked() {
		return StateTransitioning
	}
	return StateIdle
}

// TrackPosition returns the fractional section index the paged track should
// be drawn at, moving linearly from the previous index to the current one
// over the transition duration.
func (c *Controller) TrackPosition() float64 {
	if !c.Locked() {
		return float64(c.index)
	}
	elapsed := c.clock.Now().Sub(c.lockedAt)
	progress := float64(elapsed) / float64(c.settings.TransitionDuration)
	progress = math.Max(0, math.Min(1, progress))
	return float64(c.previous) + (float64(c.index)-float64(c.previous))*progress
}

// Subscribe registers fn for every event. The returned function removes it.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	if c.closed.Load() || fn == nil {
		return func() {}
	}
	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range c.subscribers {
			if sub.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// RequestGoTo navigates to target, clamped to the deck. It returns whether
// the request was accepted; requests for the current section, or made while
// a transition is locked, are dropped.
func (c *Controller) RequestGoTo(target int) bool {
	return c.goTo(target, SourceProgrammatic)
}

// Next advances one section. This is what the "next" button calls.
func (c *Controller) Next() bool {
	return c.goTo(c.index+1, SourceProgrammatic)
}

// Previous goes back one section.
func (c *Controller) Previous() bool {
	return c.goTo(c.index-1, SourceProgrammatic)
}

// Restore puts the deck back on target without a transition: no lock is
// taken, so input is accepted immediately. Hosts use it when returning to a
// deck the visitor left. A linear deck jumps there without smooth scrolling.
func (c *Controller) Restore(target int) {
	if c.closed.Load() || len(c.panels) == 0 {
		return
	}
	target = internal.Clamp(target, 0, len(c.panels)-1)
	if c.settings.Layout == constants.LayoutLinearScroll {
		c.panels[target].ScrollIntoView(false)
	}
	if target == c.index {
		return
	}
	c.activate(target)
	c.indicator.Dismiss()
	c.emit(Event{Kind: EventSectionChanged, Index: target, Total: len(c.panels), Source: SourceRestore})
}

// SideNavClick navigates in response to a side nav dot.
func (c *Controller) SideNavClick(index int) bool {
	return c.goTo(index, SourceSideNav)
}

// HandleWheel processes a wheel event. It returns true when the host should
// suppress its native scrolling for this event.
func (c *Controller) HandleWheel(dx, dy float64) bool {
	if !c.listening(ListenWheel) {
		return false
	}
	c.indicator.Dismiss()

	if c.Locked() {
		return true
	}

	delta := dx
	if math.Abs(dy) > math.Abs(dx) {
		delta = dy
	}
	if delta == 0 {
		return false
	}

	step := 1
	if delta < 0 {
		step = -1
	}
	canMove := c.canMove(step)

	if math.Abs(delta) < c.settings.WheelThreshold {
		if !c.settings.AccumulateWheel {
			return canMove
		}
		if c.accumulator != 0 && (c.accumulator > 0) != (delta > 0) {
			c.accumulator = 0
		}
		c.accumulator += delta
		if math.Abs(c.accumulator) < c.settings.WheelThreshold {
			return canMove
		}
	}

	c.accumulator = 0
	if !canMove {
		return false
	}
	c.goTo(c.index+step, SourceWheel)
	return true
}

// HandleKey processes a navigation key. Keys are honored only while the deck
// covers the middle of the viewport and no transition is locked. It returns
// true when the key was consumed.
func (c *Controller) HandleKey(key constants.Key) bool {
	if !c.listening(ListenKeyboard) || !key.IsDirectional() {
		return false
	}
	c.indicator.Dismiss()

	if len(c.panels) == 0 || !c.settings.InView() || c.Locked() {
		return false
	}

	target := c.index
	switch key {
	case constants.KeyNext:
		target++
	case constants.KeyPrevious:
		target--
	case constants.KeyFirst:
		target = 0
	case constants.KeyLast:
		target = len(c.panels) - 1
	}
	c.goTo(target, SourceKeyboard)
	return true
}

// HandleTouchStart records where a touch began.
func (c *Controller) HandleTouchStart(p Point) {
	if !c.listening(ListenTouch) {
		return
	}
	c.indicator.Dismiss()
	c.touching = true
	c.touchStart = p
}

// HandleTouchEnd completes a touch started with HandleTouchStart.
func (c *Controller) HandleTouchEnd(p Point) bool {
	if !c.listening(ListenTouch) || !c.touching {
		return false
	}
	c.touching = false
	return c.HandleSwipe(c.touchStart, p)
}

// HandleSwipe navigates one section when the horizontal movement dominates
// and exceeds the swipe threshold. Swiping left moves forward.
func (c *Controller) HandleSwipe(start, end Point) bool {
	if !c.listening(ListenTouch) || c.Locked() {
		return false
	}

	dx := start.X - end.X
	dy := start.Y - end.Y
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= c.settings.SwipeThreshold {
		return false
	}

	if dx > 0 {
		return c.goTo(c.index+1, SourceTouch)
	}
	return c.goTo(c.index-1, SourceTouch)
}

// HandleVisibility reports how much of panel index is visible in
// linear-scroll mode. Reports act only when the panel crosses the
// visibility threshold; a panel crossing upward becomes current. Hosts may
// report every frame.
func (c *Controller) HandleVisibility(index int, ratio float64) {
	if !c.listening(ListenVisibility) || index < 0 || index >= len(c.panels) {
		return
	}
	entered := ratio >= c.settings.VisibilityThreshold
	if entered == c.intersecting[index] {
		return
	}
	c.intersecting[index] = entered
	if !entered {
		return
	}

	if index != c.index {
		c.activate(index)
		c.emit(Event{Kind: EventSectionChanged, Index: index, Total: len(c.panels), Source: SourceVisibility})
	}

	if index == 0 {
		c.indicator.Trigger()
	} else {
		c.indicator.Dismiss()
	}
}

// HandleContainerVisibility tells the controller whether the deck as a whole
// is on screen. A paged deck shows its hint the first time it appears.
func (c *Controller) HandleContainerVisibility(visible bool) {
	if !c.listening(ListenContainer) {
		return
	}
	c.emit(Event{Kind: EventContainerVisibility, Index: c.index, Total: len(c.panels), Visible: visible})

	if visible && c.settings.Layout == constants.LayoutPagedDeck && c.index == 0 {
		c.indicator.Trigger()
	}
}

// ActiveQuery returns a function reporting whether section index is the
// current one and the deck is in view. Widgets living inside a section use
// it instead of searching their host for the active panel.
func (c *Controller) ActiveQuery(index int) func() bool {
	return func() bool {
		return !c.closed.Load() && c.index == index && c.settings.InView()
	}
}

// Close detaches listeners, drops subscribers and clears pending deadlines.
// It is safe to call more than once.
func (c *Controller) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	if c.unbind != nil {
		c.unbind()
		c.unbind = nil
	}
	c.listeners = 0
	c.subscribers = nil
	c.unlockAt = time.Time{}
	c.lockedAt = time.Time{}
	c.accumulator = 0
	c.touching = false
	c.indicator.reset()

	c.logger.Debug("Section controller closed", "index", c.index)
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed.Load()
}

func (c *Controller) listening(l Listener) bool {
	return !c.closed.Load() && c.listeners.Has(l)
}

func (c *Controller) canMove(step int) bool {
	target := c.index + step
	return target >= 0 && target < len(c.panels)
}

func (c *Controller) goTo(target int, source Source) bool {
	if c.closed.Load() || len(c.panels) == 0 {
		return false
	}

	target = internal.Clamp(target, 0, len(c.panels)-1)
	if target == c.index {
		return false
	}

	if c.settings.Layout == constants.LayoutLinearScroll {
		c.panels[target].ScrollIntoView(true)
		c.emit(Event{Kind: EventNavigateRequested, Index: target, Total: len(c.panels), Source: source})
		return true
	}

	if c.Locked() {
		c.logger.Debug("Transition dropped", "target", target, "source", source.String())
		return false
	}

	now := c.clock.Now()
	c.lockedAt = now
	c.unlockAt = now.Add(c.settings.TransitionDuration)
	c.activate(target)

	c.logger.Debug("Transition accepted", "from", c.previous, "to", target, "source", source.String())

	c.emit(Event{Kind: EventSectionChanged, Index: target, Total: len(c.panels), Source: source})
	c.emit(Event{Kind: EventNavigateRequested, Index: target, Total: len(c.panels), Source: source})
	return true
}

func (c *Controller) activate(target int) {
	c.panels[c.index].SetActive(false)
	c.panels[target].SetActive(true)
	c.previous = c.index
	c.index = target
	c.accumulator = 0
}

func (c *Controller) emit(e Event) {
	subs := append([]subscription(nil), c.subscribers...)
	for _, sub := range subs {
		if c.closed.Load() {
			return
		}
		sub.fn(e)
	}
}
