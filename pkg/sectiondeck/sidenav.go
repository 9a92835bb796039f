package sectiondeck

import "fmt"

// SideNav is the section indicator drawn beside the deck. It only observes
// the controller; clicks are handed back through RequestGoTo.
type SideNav struct {
	current     int
	total       int
	navigate    func(index int) bool
	next        func() bool
	unsubscribe func()
}

// NewSideNav subscribes a side nav to c.
func NewSideNav(c *Controller) *SideNav {
	sn := &SideNav{
		current:  c.Current(),
		total:    c.Total(),
		navigate: c.SideNavClick,
		next:     c.Next,
	}
	sn.unsubscribe = c.Subscribe(sn.observe)
	return sn
}

func (sn *SideNav) observe(e Event) {
	switch e.Kind {
	case EventSectionChanged, EventNavigateRequested:
		sn.current = e.Index
		sn.total = e.Total
	}
}

// Current returns the highlighted section.
func (sn *SideNav) Current() int {
	return sn.current
}

// Total returns the number of dots.
func (sn *SideNav) Total() int {
	return sn.total
}

// Label returns the one-based, zero-padded position, e.g. "02 / 05".
func (sn *SideNav) Label() string {
	if sn.total == 0 {
		return ""
	}
	return fmt.Sprintf("%02d / %02d", sn.current+1, sn.total)
}

// Dots returns one flag per section, true for the highlighted one.
func (sn *SideNav) Dots() []bool {
	dots := make([]bool, sn.total)
	if sn.current >= 0 && sn.current < sn.total {
		dots[sn.current] = true
	}
	return dots
}

// Click asks the controller to navigate to index.
func (sn *SideNav) Click(index int) bool {
	return sn.navigate(index)
}

// Next is the "next" button.
func (sn *SideNav) Next() bool {
	return sn.next()
}

// HasNext reports whether the "next" button should be shown.
func (sn *SideNav) HasNext() bool {
	return sn.current < sn.total-1
}

// Detach stops observing the controller.
func (sn *SideNav) Detach() {
	if sn.unsubscribe != nil {
		sn.unsubscribe()
		sn.unsubscribe = nil
	}
}
