package sdlhost

import (
	"math"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// scrollEase is the fraction of the remaining distance covered per frame
// during a smooth scroll.
const scrollEase = 0.2

// scroller is the vertical scroll position of a linear-scroll deck. Panels
// are stacked at one viewport height each.
type scroller struct {
	count    int
	viewport float64

	offset float64
	target float64
}

func newScroller(count int, viewport float64) *scroller {
	return &scroller{count: count, viewport: viewport}
}

func (s *scroller) maxOffset() float64 {
	return max(0, float64(s.count-1)*s.viewport)
}

func (s *scroller) clamp(v float64) float64 {
	return min(max(v, 0), s.maxOffset())
}

// ScrollBy moves the scroll position immediately, as native scrolling does.
func (s *scroller) ScrollBy(delta float64) {
	s.offset = s.clamp(s.offset + delta)
	s.target = s.offset
}

// ScrollTo brings panel index to the top of the viewport.
func (s *scroller) ScrollTo(index int, smooth bool) {
	s.target = s.clamp(float64(internal.Clamp(index, 0, s.count-1)) * s.viewport)
	if !smooth {
		s.offset = s.target
	}
}

// Resize keeps the top panel in place when the viewport changes.
func (s *scroller) Resize(viewport float64) {
	if viewport <= 0 || viewport == s.viewport {
		return
	}
	top := s.offset / max(s.viewport, 1)
	s.viewport = viewport
	s.offset = s.clamp(top * viewport)
	s.target = s.offset
}

// Update advances a smooth scroll by one frame.
func (s *scroller) Update() {
	d := s.target - s.offset
	if math.Abs(d) < 1 {
		s.offset = s.target
		return
	}
	s.offset += d * scrollEase
}

func (s *scroller) Offset() float64 {
	return s.offset
}

// Spans returns every panel's extent relative to the viewport.
func (s *scroller) Spans() []internal.Span {
	return internal.StackedSpans(s.count, s.viewport, s.offset)
}

// Ratios returns the visible fraction of each panel.
func (s *scroller) Ratios() []float64 {
	spans := s.Spans()
	out := make([]float64, len(spans))
	for i, sp := range spans {
		out[i] = sp.VisibleRatio(s.viewport)
	}
	return out
}

// navLayout positions the side nav column at the right edge.
type navLayout struct {
	dots   []sdl.Rect
	label  sdl.Point
	next   sdl.Rect
	column sdl.Rect
}

const (
	navColumnWidth = 96
	navDotSize     = 14
	navDotGap      = 18
)

func layoutNav(width, height int32, total int) navLayout {
	var l navLayout
	l.column = sdl.Rect{X: width - navColumnWidth, Y: 0, W: navColumnWidth, H: height}

	cx := width - navColumnWidth/2
	stack := int32(total)*(navDotSize+navDotGap) - navDotGap
	top := (height - stack) / 2

	l.dots = make([]sdl.Rect, total)
	for i := range l.dots {
		l.dots[i] = sdl.Rect{
			X: cx - navDotSize/2,
			Y: top + int32(i)*(navDotSize+navDotGap),
			W: navDotSize,
			H: navDotSize,
		}
	}

	bottom := top + max(stack, 0)
	l.label = sdl.Point{X: cx, Y: bottom + navDotGap}
	l.next = sdl.Rect{X: cx - 16, Y: bottom + navDotGap*3, W: 32, H: 32}
	return l
}

// dotAt returns the dot under p. Hits are padded by half the gap so small
// dots are easy to tap.
func (l navLayout) dotAt(p sdl.Point) (int, bool) {
	for i, r := range l.dots {
		hit := sdl.Rect{X: r.X - navDotGap/2, Y: r.Y - navDotGap/2, W: r.W + navDotGap, H: r.H + navDotGap}
		if p.InRect(&hit) {
			return i, true
		}
	}
	return 0, false
}

func (l navLayout) nextAt(p sdl.Point) bool {
	return p.InRect(&l.next)
}

// holdRect is where the hold-to-advance button sits inside a panel.
func holdRect(panel sdl.Rect) sdl.Rect {
	const w, h = 240, 56
	return sdl.Rect{X: panel.X + (panel.W-w)/2, Y: panel.Y + panel.H - h*2, W: w, H: h}
}

// pagedOffset converts the controller's interpolated track position into the
// horizontal pixel offset of the paged track.
func pagedOffset(track float64, width int32) int32 {
	return int32(math.Round(track * float64(width)))
}
