package internal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/stretchr/testify/assert"
)

func TestDirectionalRepeatTiming(t *testing.T) {
	now := time.Unix(0, 0)
	d := NewDirectionalInputWithTiming(300*time.Millisecond, 50*time.Millisecond)
	d.SetClock(func() time.Time { return now })

	assert.True(t, d.SetHeld(constants.KeyNext, true))
	assert.Equal(t, DirectionNone, d.Update())

	now = now.Add(299 * time.Millisecond)
	assert.Equal(t, DirectionNone, d.Update())

	now = now.Add(time.Millisecond)
	assert.Equal(t, DirectionNext, d.Update())

	now = now.Add(49 * time.Millisecond)
	assert.Equal(t, DirectionNone, d.Update())
	now = now.Add(time.Millisecond)
	assert.Equal(t, DirectionNext, d.Update())

	d.SetHeld(constants.KeyNext, false)
	now = now.Add(time.Second)
	assert.Equal(t, DirectionNone, d.Update())
}

func TestDirectionalIgnoresOtherKeys(t *testing.T) {
	d := NewDirectionalInput()
	assert.False(t, d.SetHeld(constants.KeyHold, true))
	assert.False(t, d.IsHeld())
	assert.Equal(t, constants.KeyPrevious, DirectionPrevious.Key())
	assert.Equal(t, "next", DirectionNext.String())
}

func TestSpanCrossesCenter(t *testing.T) {
	cases := []struct {
		span Span
		want bool
	}{
		{Span{Start: 0, Length: 100}, true},
		{Span{Start: 50, Length: 100}, false},
		{Span{Start: -60, Length: 100}, false},
		{Span{Start: -49, Length: 100}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.span.CrossesCenter(100), "%+v", tc.span)
	}
}

func TestSpanVisibleRatio(t *testing.T) {
	spans := StackedSpans(3, 100, 40)

	assert.InDelta(t, 0.6, spans[0].VisibleRatio(100), 1e-9)
	assert.InDelta(t, 0.4, spans[1].VisibleRatio(100), 1e-9)
	assert.Zero(t, spans[2].VisibleRatio(100))
	assert.Zero(t, Span{}.VisibleRatio(100))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 4, Clamp(10, 0, 4))
	assert.Equal(t, 0, Clamp(-2, 0, 4))
	assert.Equal(t, 2, Clamp(2, 0, 4))
	assert.Equal(t, 0, Clamp(3, 0, -1))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
