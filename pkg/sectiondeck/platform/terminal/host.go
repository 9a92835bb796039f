// Package terminal hosts the deck in a terminal with bubbletea. Only the
// paged layout is supported: a terminal shows one section at a time.
package terminal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Host. Zero values use the process terminal.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Clock  sectiondeck.Clock
	Logger *slog.Logger

	// ProgramOptions are appended to the defaults (alt screen, mouse).
	ProgramOptions []tea.ProgramOption
}

// Host implements app.Host on a terminal.
type Host struct {
	opts Options
}

// New creates a terminal host.
func New(opts Options) *Host {
	if opts.Clock == nil {
		opts.Clock = sectiondeck.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = internal.GetInternalLogger()
	}
	return &Host{opts: opts}
}

// Settings adapts the configured controller settings to a terminal: the
// layout is forced to paged and wheel notches accumulate.
func (h *Host) Settings(env *app.Env) sectiondeck.Settings {
	s := env.Config.Settings()
	if s.Layout != constants.LayoutPagedDeck {
		h.opts.Logger.Warn("Terminal host only supports the paged layout", "configured", s.Layout.String())
		s.Layout = constants.LayoutPagedDeck
	}
	s.AccumulateWheel = true
	s.Clock = h.opts.Clock
	s.Logger = h.opts.Logger
	return s
}

func (h *Host) keys(env *app.Env) keyMap {
	return defaultKeyMap().withOverrides(env.Config.KeyBindings())
}

func (h *Host) Deck(ctx context.Context, env *app.Env, in app.DeckInput) (app.DeckResult, error) {
	if len(env.Config.Panels) == 0 {
		return app.DeckResult{}, sectiondeck.ErrNoPanels
	}

	text, panels := buildPanels(env.Config.Panels)
	session, err := app.NewSession(env, panels, h.Settings(env), in)
	if err != nil {
		return app.DeckResult{}, err
	}
	defer session.Close()

	model := newDeckModel(ctx, env, session, text, h.keys(env), func() time.Time { return h.opts.Clock.Now() })
	if err := h.run(ctx, model); err != nil {
		return app.DeckResult{}, err
	}

	res, done := session.Done()
	if !done {
		return app.DeckResult{}, sectiondeck.ErrCancelled
	}
	return res, nil
}

func (h *Host) Cookies(ctx context.Context, env *app.Env) (app.CookiesResult, error) {
	model := &cookiesModel{
		ctx:  ctx,
		env:  env,
		page: app.NewCookiesPage(env.Banner),
		keys: h.keys(env),
	}
	if err := h.run(ctx, model); err != nil {
		return app.CookiesResult{}, err
	}
	if model.err != nil {
		return app.CookiesResult{}, model.err
	}

	res, done := model.page.Done()
	if !done {
		return app.CookiesResult{}, sectiondeck.ErrCancelled
	}
	return res, nil
}

func (h *Host) run(ctx context.Context, model tea.Model) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if h.opts.Input != nil {
		opts = append(opts, tea.WithInput(h.opts.Input))
	}
	if h.opts.Output != nil {
		opts = append(opts, tea.WithOutput(h.opts.Output))
	}
	opts = append(opts, h.opts.ProgramOptions...)

	_, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return sectiondeck.NewHostError("run_terminal", err)
	}
	return nil
}
