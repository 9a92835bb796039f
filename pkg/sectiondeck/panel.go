package sectiondeck

import (
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
)

// Panel is one full-viewport section owned by the host. The controller only
// toggles which panel is active and, in linear-scroll mode, asks the host
// to bring one into view.
type Panel interface {
	SetActive(active bool)
	ScrollIntoView(smooth bool)
}

// Point is a position in host coordinates.
type Point struct {
	X float64
	Y float64
}

// Listener is a set of input channels a controller wants delivered.
type Listener uint8

const (
	ListenWheel Listener = 1 << iota
	ListenTouch
	ListenKeyboard
	ListenVisibility
	ListenContainer
)

// Has reports whether every channel in other is part of l.
func (l Listener) Has(other Listener) bool {
	return l&other == other
}

// ListenersFor returns the channels a controller registers for a layout.
func ListenersFor(mode constants.LayoutMode) Listener {
	if mode == constants.LayoutPagedDeck {
		return ListenWheel | ListenTouch | ListenKeyboard | ListenContainer
	}
	return ListenVisibility | ListenContainer
}

// InputBinder attaches a controller to the host's input sources. The
// returned function detaches it; it is called exactly once, from Close.
type InputBinder interface {
	Bind(c *Controller, listeners Listener) (unbind func())
}

// InputBinderFunc adapts a function to InputBinder.
type InputBinderFunc func(c *Controller, listeners Listener) func()

func (f InputBinderFunc) Bind(c *Controller, listeners Listener) func() {
	return f(c, listeners)
}

// Clock supplies the controller's notion of now. Transition and indicator
// deadlines are read from it, so no timer goroutine ever runs.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
