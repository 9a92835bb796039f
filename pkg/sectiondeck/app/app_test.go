package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct{ t time.Time }

func newClock() *clock                   { return &clock{t: time.Unix(5000, 0)} }
func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type panel struct{ active bool }

func (p *panel) SetActive(active bool) { p.active = active }
func (p *panel) ScrollIntoView(bool)   {}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func panels(n int) []sectiondeck.Panel {
	out := make([]sectiondeck.Panel, n)
	for i := range out {
		out[i] = &panel{}
	}
	return out
}

func newEnv(t *testing.T, cfg *config.Config) *Env {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	env, err := NewEnv(context.Background(), cfg, prefs.NewMemoryStore(), discard())
	require.NoError(t, err)
	return env
}

func newSession(t *testing.T, env *Env, n int, in DeckInput) (*Session, *clock) {
	t.Helper()
	clk := newClock()
	settings := env.Config.Settings()
	settings.Clock = clk
	s, err := NewSession(env, panels(n), settings, in)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, clk
}

func TestSessionNavigatesAndQuits(t *testing.T) {
	ctx := context.Background()
	s, clk := newSession(t, newEnv(t, nil), 3, DeckInput{})

	assert.True(t, s.KeyDown(ctx, constants.KeyNext, false))
	assert.Equal(t, 1, s.Controller.Current())
	assert.Equal(t, 1, s.Nav.Current())

	clk.Advance(constants.DefaultTransitionDuration)
	s.KeyDown(ctx, constants.KeyLast, false)
	assert.Equal(t, 2, s.Controller.Current())

	_, done := s.Done()
	assert.False(t, done)

	assert.True(t, s.KeyDown(ctx, constants.KeyQuit, false))
	res, done := s.Done()
	require.True(t, done)
	assert.Equal(t, DeckActionQuit, res.Action)
	assert.Equal(t, &DeckResume{Section: 2}, res.Resume)

	assert.False(t, s.KeyDown(ctx, constants.KeyPrevious, false), "finished sessions ignore input")
}

func TestSessionResume(t *testing.T) {
	s, _ := newSession(t, newEnv(t, nil), 4, DeckInput{Resume: &DeckResume{Section: 3}})
	assert.Equal(t, 3, s.Controller.Current())
	assert.Equal(t, 3, s.Nav.Current())
	assert.False(t, s.Controller.Locked(), "resuming is not a transition")

	assert.True(t, s.KeyDown(context.Background(), constants.KeyPrevious, false))
	assert.Equal(t, 2, s.Controller.Current())
}

func TestSessionHoldButton(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Panels = []config.Panel{{Title: "a", Hold: true}, {Title: "b"}, {Title: "c", Hold: true}}
	s, clk := newSession(t, newEnv(t, cfg), 3, DeckInput{})

	assert.True(t, s.HasHold(0))
	assert.False(t, s.HasHold(1))
	require.NotNil(t, s.Hold())

	assert.True(t, s.KeyDown(ctx, constants.KeyHold, false))
	assert.True(t, s.KeyDown(ctx, constants.KeyHold, true), "repeats are swallowed")

	clk.Advance(constants.DefaultHoldDuration / 2)
	s.Update()
	assert.Equal(t, 0, s.Controller.Current())

	clk.Advance(constants.DefaultHoldDuration / 2)
	s.Update()
	assert.Equal(t, 1, s.Controller.Current())
	s.KeyUp(constants.KeyHold)

	assert.Nil(t, s.Hold())
	assert.False(t, s.KeyDown(ctx, constants.KeyHold, false))
}

func TestSessionHoldReleasedEarly(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Panels = []config.Panel{{Hold: true}, {}}
	s, clk := newSession(t, newEnv(t, cfg), 2, DeckInput{})

	s.KeyDown(ctx, constants.KeyHold, false)
	clk.Advance(constants.DefaultHoldDuration / 2)
	s.KeyUp(constants.KeyHold)
	clk.Advance(constants.DefaultHoldDuration)
	s.Update()
	assert.Equal(t, 0, s.Controller.Current())
}

func TestSessionBannerKeys(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.Banner.Reopen()
	s, _ := newSession(t, env, 2, DeckInput{})

	require.True(t, env.Banner.Visible())
	assert.True(t, s.KeyDown(ctx, constants.KeyConfirm, false))
	assert.False(t, env.Banner.Visible())

	got, ok, err := prefs.LoadConsent(ctx, env.Store)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Analytics)

	assert.False(t, s.KeyDown(ctx, constants.KeyConfirm, false), "confirm does nothing without a banner")
}

func TestSessionLanguageToggle(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	s, _ := newSession(t, env, 1, DeckInput{})

	s.KeyDown(ctx, constants.KeyLanguage, false)
	assert.Equal(t, language.Spanish, env.Text.Language())
	s.KeyDown(ctx, constants.KeyLanguage, true)
	assert.Equal(t, language.Spanish, env.Text.Language())
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s, _ := newSession(t, newEnv(t, nil), 2, DeckInput{})
	s.Close()
	s.Close()
	assert.True(t, s.Controller.Closed())
	assert.Zero(t, s.Controller.Listeners())
}

func TestCookiesPage(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	page := NewCookiesPage(env.Banner)

	assert.True(t, env.Banner.Visible())
	assert.Equal(t, RowAnalytics, page.Cursor())
	assert.True(t, page.Checked(RowNecessary))

	require.NoError(t, page.HandleKey(ctx, constants.KeyPrevious))
	assert.Equal(t, RowAnalytics, page.Cursor(), "necessary row is not selectable")

	require.NoError(t, page.HandleKey(ctx, constants.KeyNext))
	require.NoError(t, page.HandleKey(ctx, constants.KeyConfirm))
	assert.True(t, page.Checked(RowMarketing))

	require.NoError(t, page.HandleKey(ctx, constants.KeyNext))
	assert.Equal(t, RowSave, page.Cursor())
	require.NoError(t, page.HandleKey(ctx, constants.KeyConfirm))

	res, done := page.Done()
	require.True(t, done)
	assert.True(t, res.Saved)
	assert.False(t, env.Banner.Visible())

	got, _, err := prefs.LoadConsent(ctx, env.Store)
	require.NoError(t, err)
	assert.Equal(t, prefs.Consent{Necessary: true, Marketing: true}, got)
}

func TestCookiesPageCancel(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	page := NewCookiesPage(env.Banner)

	require.NoError(t, page.HandleKey(ctx, constants.KeyConfirm))
	require.NoError(t, page.HandleKey(ctx, constants.KeyCancel))

	res, done := page.Done()
	assert.True(t, done)
	assert.False(t, res.Saved)
	_, ok, err := prefs.LoadConsent(ctx, env.Store)
	require.NoError(t, err)
	assert.False(t, ok)
}

type scriptedHost struct {
	decks   []DeckInput
	cookies int
}

func (h *scriptedHost) Deck(_ context.Context, _ *Env, in DeckInput) (DeckResult, error) {
	h.decks = append(h.decks, in)
	if len(h.decks) == 1 {
		return DeckResult{Action: DeckActionCookies, Resume: &DeckResume{Section: 2}}, nil
	}
	return DeckResult{}, sectiondeck.ErrCancelled
}

func (h *scriptedHost) Cookies(context.Context, *Env) (CookiesResult, error) {
	h.cookies++
	return CookiesResult{Saved: true}, nil
}

func TestRunRestoresSectionAfterCookies(t *testing.T) {
	host := &scriptedHost{}
	require.NoError(t, Run(context.Background(), host, newEnv(t, nil)))

	require.Len(t, host.decks, 2)
	assert.Nil(t, host.decks[0].Resume)
	assert.Equal(t, &DeckResume{Section: 2}, host.decks[1].Resume)
	assert.Equal(t, 1, host.cookies)
}
