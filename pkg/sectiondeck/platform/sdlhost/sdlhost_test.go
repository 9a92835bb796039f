package sdlhost

import (
	"log/slog"
	"testing"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func abs(code evdev.EvCode, v int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_ABS, Code: code, Value: v}
}

func touch(down bool) *evdev.InputEvent {
	v := int32(0)
	if down {
		v = 1
	}
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_TOUCH, Value: v}
}

func syn() *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

func TestTouchTrackerSamples(t *testing.T) {
	tr := newTouchTracker(map[evdev.EvCode]evdev.AbsInfo{
		evdev.ABS_MT_POSITION_X: {Minimum: 0, Maximum: 1000},
		evdev.ABS_MT_POSITION_Y: {Minimum: 0, Maximum: 500},
	})

	for _, ev := range []*evdev.InputEvent{abs(evdev.ABS_MT_POSITION_X, 800), abs(evdev.ABS_MT_POSITION_Y, 250), touch(true)} {
		_, ok := tr.feed(ev)
		assert.False(t, ok)
	}
	s, ok := tr.feed(syn())
	require.True(t, ok)
	assert.Equal(t, touchSample{Down: true, X: 0.8, Y: 0.5}, s)

	_, ok = tr.feed(abs(evdev.ABS_MT_POSITION_X, 100))
	assert.False(t, ok)
	_, ok = tr.feed(syn())
	assert.False(t, ok, "motion alone is not a sample")

	tr.feed(touch(false))
	s, ok = tr.feed(syn())
	require.True(t, ok)
	assert.False(t, s.Down)
	assert.InDelta(t, 0.1, s.X, 1e-9)
}

func TestTouchTrackerClampsOutOfRange(t *testing.T) {
	tr := newTouchTracker(map[evdev.EvCode]evdev.AbsInfo{
		evdev.ABS_X: {Minimum: 100, Maximum: 200},
		evdev.ABS_Y: {Minimum: 100, Maximum: 200},
	})
	tr.feed(abs(evdev.ABS_X, 50))
	tr.feed(abs(evdev.ABS_Y, 300))
	tr.feed(touch(true))
	s, ok := tr.feed(syn())
	require.True(t, ok)
	assert.Equal(t, 0.0, s.X)
	assert.Equal(t, 1.0, s.Y)
}

func TestScrollerVisibility(t *testing.T) {
	s := newScroller(3, 100)
	assert.Equal(t, []float64{1, 0, 0}, s.Ratios())

	s.ScrollBy(40)
	ratios := s.Ratios()
	assert.InDelta(t, 0.6, ratios[0], 1e-9)
	assert.InDelta(t, 0.4, ratios[1], 1e-9)

	s.ScrollBy(1000)
	assert.Equal(t, 200.0, s.Offset(), "clamped to the last panel")

	s.ScrollBy(-1000)
	assert.Equal(t, 0.0, s.Offset())
}

func TestScrollerSmoothScroll(t *testing.T) {
	s := newScroller(4, 100)
	s.ScrollTo(2, true)
	assert.Equal(t, 0.0, s.Offset())

	for range 100 {
		s.Update()
	}
	assert.Equal(t, 200.0, s.Offset())

	s.ScrollTo(9, false)
	assert.Equal(t, 300.0, s.Offset())
}

func TestScrollerResizeKeepsTopPanel(t *testing.T) {
	s := newScroller(3, 100)
	s.ScrollTo(1, false)
	s.Resize(50)
	assert.Equal(t, 50.0, s.Offset())
}

func TestNavLayoutHitTesting(t *testing.T) {
	l := layoutNav(800, 600, 3)
	require.Len(t, l.dots, 3)

	for i, r := range l.dots {
		got, ok := l.dotAt(sdl.Point{X: r.X + r.W/2, Y: r.Y + r.H/2})
		require.True(t, ok)
		assert.Equal(t, i, got)
	}

	_, ok := l.dotAt(sdl.Point{X: 10, Y: 10})
	assert.False(t, ok)
	assert.True(t, l.nextAt(sdl.Point{X: l.next.X + 1, Y: l.next.Y + 1}))
}

func TestPagedOffset(t *testing.T) {
	assert.Equal(t, int32(0), pagedOffset(0, 700))
	assert.Equal(t, int32(350), pagedOffset(0.5, 700))
	assert.Equal(t, int32(1400), pagedOffset(2, 700))
}

func TestWheelDelta(t *testing.T) {
	dx, dy := wheelDelta(&sdl.MouseWheelEvent{Y: -1})
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, wheelPixels, dy, "wheel toward the user scrolls down")

	dx, dy = wheelDelta(&sdl.MouseWheelEvent{X: 1, Y: -1, Direction: sdl.MOUSEWHEEL_FLIPPED})
	assert.Equal(t, -wheelPixels, dx)
	assert.Equal(t, -wheelPixels, dy)
}

func TestInputProcessorOverrides(t *testing.T) {
	p := NewInputProcessor(map[constants.Key][]string{
		constants.KeyNext: {"X", "NoSuchKey"},
	}, slog.New(slog.DiscardHandler))

	press := func(code sdl.Keycode) *InputEvent {
		return p.Process(&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: code}})
	}

	in := press(sdl.K_x)
	require.NotNil(t, in)
	assert.Equal(t, constants.KeyNext, in.Key)
	assert.True(t, in.Pressed)

	assert.Nil(t, press(sdl.K_RIGHT), "overridden defaults are removed")
	require.NotNil(t, press(sdl.K_LEFT))
	assert.Equal(t, constants.KeyPrevious, press(sdl.K_LEFT).Key)
}

func TestInputProcessorControllerButtons(t *testing.T) {
	p := NewInputProcessor(nil, slog.New(slog.DiscardHandler))
	in := p.Process(&sdl.ControllerButtonEvent{Button: uint8(sdl.CONTROLLER_BUTTON_A), State: sdl.RELEASED})
	require.NotNil(t, in)
	assert.Equal(t, constants.KeyHold, in.Key)
	assert.False(t, in.Pressed)
}

func TestTextureCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newTextureCache(2)
	c.set("a", nil)
	c.set("b", nil)
	c.touch("a")
	c.set("c", nil)

	_, hasA := c.textures["a"]
	_, hasB := c.textures["b"]
	assert.True(t, hasA)
	assert.False(t, hasB)
	assert.Equal(t, []string{"a", "c"}, c.order)

	c.destroy()
	assert.Empty(t, c.textures)
}

func TestRasterizeSVG(t *testing.T) {
	img, err := rasterizeSVG(iconArrowNext.doc, 24, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())

	// The arrow shaft crosses the middle row.
	_, _, _, a := img.At(8, 12).RGBA()
	assert.NotZero(t, a)
}
