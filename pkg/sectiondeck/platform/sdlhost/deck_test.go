package sdlhost

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const (
	testWidth  = 1024
	testHeight = 768
)

// openTestDeck starts a deck without a window; nothing here touches SDL
// video.
func openTestDeck(t *testing.T, layout constants.LayoutMode, cfgPanels ...config.Panel) (*deckScreen, *clock) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Default()
	cfg.Layout = layout.String()
	cfg.Panels = cfgPanels
	require.NoError(t, cfg.Validate())

	env, err := app.NewEnv(context.Background(), cfg, prefs.NewMemoryStore(), logger)
	require.NoError(t, err)

	clk := &clock{t: time.Unix(5000, 0)}
	h := &Host{clock: clk, logger: logger}
	d, err := h.openDeck(env, app.DeckInput{}, testWidth, testHeight)
	require.NoError(t, err)
	t.Cleanup(d.close)
	return d, clk
}

func center(r sdl.Rect) sdl.Point {
	return sdl.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func TestOpenDeckWithoutPanels(t *testing.T) {
	env, err := app.NewEnv(context.Background(), config.Default(), prefs.NewMemoryStore(), nil)
	require.NoError(t, err)
	h := &Host{clock: sectiondeck.SystemClock, logger: env.Logger}

	_, err = h.openDeck(env, app.DeckInput{}, testWidth, testHeight)
	assert.ErrorIs(t, err, sectiondeck.ErrNoPanels)
}

func TestDeckBindsLayoutListeners(t *testing.T) {
	paged, _ := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{}, config.Panel{})
	assert.Equal(t, sectiondeck.ListenersFor(constants.LayoutPagedDeck), paged.listeners)
	assert.Nil(t, paged.scroll)

	linear, _ := openTestDeck(t, constants.LayoutLinearScroll, config.Panel{}, config.Panel{})
	assert.Equal(t, sectiondeck.ListenersFor(constants.LayoutLinearScroll), linear.listeners)
	require.NotNil(t, linear.scroll)
}

func TestDeckCloseUnbindsInput(t *testing.T) {
	d, _ := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{}, config.Panel{})
	require.True(t, d.listening(sectiondeck.ListenKeyboard))

	d.session.Controller.Close()
	assert.Equal(t, sectiondeck.Listener(0), d.listeners)
	assert.False(t, d.listening(sectiondeck.ListenWheel))
}

func TestDeckInViewFollowsWindow(t *testing.T) {
	ctx := context.Background()
	d, _ := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{}, config.Panel{})
	assert.True(t, d.inView())

	d.env.Banner.Reopen()
	assert.True(t, d.inView(), "the banner leaves the middle uncovered")

	d.setShown(false)
	assert.False(t, d.inView())
	d.key(ctx, constants.KeyNext, false)
	assert.Equal(t, 0, d.session.Controller.Current(), "keys are ignored while hidden")

	d.setShown(true)
	d.key(ctx, constants.KeyNext, false)
	assert.Equal(t, 1, d.session.Controller.Current())
}

func TestDeckLinearKeysScroll(t *testing.T) {
	ctx := context.Background()
	d, _ := openTestDeck(t, constants.LayoutLinearScroll, config.Panel{}, config.Panel{}, config.Panel{})
	c := d.session.Controller

	d.key(ctx, constants.KeyNext, false)
	assert.Equal(t, 0.0, d.scroll.Offset(), "key scrolls are smooth")
	for range 100 {
		d.scroll.Update()
		d.reportVisibility()
	}
	assert.Equal(t, float64(testHeight), d.scroll.Offset())
	assert.Equal(t, 1, c.Current())
	assert.True(t, d.panels[1].active)
	assert.False(t, d.panels[0].active)

	d.key(ctx, constants.KeyLast, false)
	for range 100 {
		d.scroll.Update()
		d.reportVisibility()
	}
	assert.Equal(t, 2, c.Current())

	d.key(ctx, constants.KeyFirst, false)
	for range 100 {
		d.scroll.Update()
		d.reportVisibility()
	}
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 0.0, d.scroll.Offset())
}

func TestDeckReportVisibilityActsOnCrossings(t *testing.T) {
	d, _ := openTestDeck(t, constants.LayoutLinearScroll, config.Panel{}, config.Panel{}, config.Panel{})
	c := d.session.Controller

	changes := 0
	c.Subscribe(func(e sectiondeck.Event) {
		if e.Kind == sectiondeck.EventSectionChanged {
			changes++
		}
	})

	d.reportVisibility()
	assert.True(t, c.Indicator().Visible(), "the first section shows the indicator")

	d.scroll.ScrollBy(testHeight * 0.4)
	d.reportVisibility()
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 0, changes)

	d.scroll.ScrollBy(testHeight * 0.2)
	d.reportVisibility()
	d.reportVisibility()
	d.scroll.ScrollBy(1)
	d.reportVisibility()
	assert.Equal(t, 1, c.Current())
	assert.Equal(t, 1, changes, "only the crossing is reported")
	assert.False(t, c.Indicator().Visible())
}

func TestDeckReportVisibilityPagedIsNoop(t *testing.T) {
	d, _ := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{}, config.Panel{})
	d.reportVisibility()
	assert.Equal(t, 0, d.session.Controller.Current())
}

func TestDeckClickNavigation(t *testing.T) {
	d, clk := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{}, config.Panel{}, config.Panel{})
	c := d.session.Controller

	d.click(center(d.nav.next), true)
	d.click(center(d.nav.next), false)
	assert.Equal(t, 1, c.Current())
	assert.Equal(t, "02 / 03", d.session.Nav.Label())

	clk.Advance(constants.DefaultTransitionDuration)
	d.click(center(d.nav.dots[2]), true)
	assert.Equal(t, 2, c.Current())
	assert.Equal(t, 2, d.session.Nav.Current())

	clk.Advance(constants.DefaultTransitionDuration)
	d.click(center(d.nav.dots[0]), true)
	assert.Equal(t, 0, c.Current())
}

func TestDeckClickHoldButton(t *testing.T) {
	d, clk := openTestDeck(t, constants.LayoutPagedDeck, config.Panel{Hold: true}, config.Panel{})
	hb := d.session.Hold()
	require.NotNil(t, hb)

	d.click(sdl.Point{X: 5, Y: 5}, true)
	assert.False(t, hb.Pressed(), "outside the button")

	d.click(center(holdRect(d.panelRect(0))), true)
	assert.True(t, hb.Pressed())
	assert.Same(t, hb, d.pointerHold)

	clk.Advance(constants.DefaultHoldDuration / 2)
	d.click(sdl.Point{}, false)
	assert.False(t, hb.Pressed())
	assert.Nil(t, d.pointerHold)

	d.session.Update()
	assert.Equal(t, 0, d.session.Controller.Current(), "released before completion")
}
