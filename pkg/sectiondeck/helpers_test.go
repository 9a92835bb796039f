package sectiondeck

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type fakePanel struct {
	active     bool
	scrolls    int
	lastSmooth bool
}

func (p *fakePanel) SetActive(active bool) { p.active = active }

func (p *fakePanel) ScrollIntoView(smooth bool) {
	p.scrolls++
	p.lastSmooth = smooth
}

func makePanels(n int) ([]Panel, []*fakePanel) {
	handles := make([]Panel, n)
	fakes := make([]*fakePanel, n)
	for i := range handles {
		fakes[i] = &fakePanel{}
		handles[i] = fakes[i]
	}
	return handles, fakes
}

func activeCount(fakes []*fakePanel) int {
	n := 0
	for _, p := range fakes {
		if p.active {
			n++
		}
	}
	return n
}

type recorder struct {
	events []Event
}

func (r *recorder) record(e Event) { r.events = append(r.events, e) }

func (r *recorder) changes() []int {
	var out []int
	for _, e := range r.events {
		if e.Kind == EventSectionChanged {
			out = append(out, e.Index)
		}
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings(clock *fakeClock) Settings {
	s := DefaultSettings()
	s.Clock = clock
	s.Logger = quietLogger()
	return s
}

func newDeck(t *testing.T, n int, mutate func(*Settings)) (*Controller, []*fakePanel, *fakeClock, *recorder) {
	t.Helper()
	clock := newFakeClock()
	settings := testSettings(clock)
	if mutate != nil {
		mutate(&settings)
	}
	panels, fakes := makePanels(n)
	c, err := New(panels, settings)
	require.NoError(t, err)
	rec := &recorder{}
	c.Subscribe(rec.record)
	return c, fakes, clock, rec
}
