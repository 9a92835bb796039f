package internal

// Span is a one-dimensional extent along the scroll axis, in host units.
type Span struct {
	Start  float64
	Length float64
}

// End returns the exclusive end of the span.
func (s Span) End() float64 {
	return s.Start + s.Length
}

// CrossesCenter reports whether the span covers the midpoint of a viewport
// of the given size. This is how a deck decides it "owns" the keyboard.
func (s Span) CrossesCenter(viewport float64) bool {
	mid := viewport * 0.5
	return s.Start < mid && s.End() > mid
}

// VisibleRatio returns the fraction of the span inside [0, viewport).
func (s Span) VisibleRatio(viewport float64) float64 {
	if s.Length <= 0 || viewport <= 0 {
		return 0
	}
	top := max(s.Start, 0)
	bottom := min(s.End(), viewport)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / s.Length
}

// StackedSpans lays out count panels of equal length one after another,
// shifted by the current scroll offset.
func StackedSpans(count int, length, offset float64) []Span {
	spans := make([]Span, count)
	for i := range spans {
		spans[i] = Span{Start: float64(i)*length - offset, Length: length}
	}
	return spans
}

// Clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
