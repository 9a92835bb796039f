// Package sdlhost hosts the deck in an SDL2 window. It supports both
// layouts, keyboard and game controllers, mouse wheel, SDL touch events and
// raw evdev touchscreens.
package sdlhost

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"
)

// Options configures Init.
type Options struct {
	Window WindowOptions
	Theme  *Theme // nil uses DefaultTheme
	Clock  sectiondeck.Clock
	Logger *slog.Logger
}

// Host implements app.Host in an SDL window.
type Host struct {
	window *Window
	fonts  *fonts
	text   *textRenderer
	input  *InputProcessor
	touch  *touchReader
	theme  Theme
	clock  sectiondeck.Clock
	logger *slog.Logger

	repeatDelay, repeatInterval time.Duration

	running atomic.Bool
	closed  atomic.Bool
}

// Init brings up SDL, the window, fonts and input devices. Close must be
// called on the same goroutine before exit.
func Init(cfg *config.Config, opts Options) (*Host, error) {
	if opts.Logger == nil {
		opts.Logger = internal.GetInternalLogger()
	}
	if opts.Clock == nil {
		opts.Clock = sectiondeck.SystemClock
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return nil, sectiondeck.NewHostError("init_sdl", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, sectiondeck.NewHostError("init_ttf", err)
	}
	if err := img.Init(img.INIT_PNG | img.INIT_JPG); err != nil {
		// Images are optional; sections without them still render.
		opts.Logger.Warn("Image support unavailable", "error", err)
	}

	h := &Host{
		theme:  theme,
		clock:  opts.Clock,
		logger: opts.Logger,
		input:  NewInputProcessor(cfg.KeyBindings(), opts.Logger),
	}

	winOpts := opts.Window
	if winOpts.IsZero() {
		winOpts = WindowOptions{Resizable: true}
	}
	width, height := windowSize(cfg.Window.Width, cfg.Window.Height)

	var err error
	if h.window, err = newWindow(cfg.Window.Title, width, height, winOpts); err != nil {
		h.Close()
		return nil, err
	}

	fontPath, err := findFont(cfg.Window.FontPath)
	if err != nil {
		h.Close()
		return nil, err
	}
	if h.fonts, err = openFonts(fontPath, cfg.Window.FontSize); err != nil {
		h.Close()
		return nil, err
	}
	h.text = &textRenderer{renderer: h.window.Renderer, cache: newTextureCache(0)}

	if cfg.Input.TouchDevice != "" {
		h.touch, err = openTouchReader(cfg.Input.TouchDevice, opts.Logger)
		if err != nil {
			opts.Logger.Warn("Touch device unavailable", "path", cfg.Input.TouchDevice, "error", err)
		}
	}

	h.repeatDelay, h.repeatInterval = cfg.RepeatTiming()

	h.running.Store(true)
	return h, nil
}

// Stop makes the current screen return ErrCancelled on its next frame. It
// is safe to call from any goroutine, e.g. a signal handler.
func (h *Host) Stop() {
	h.running.Store(false)
}

// Close releases every SDL resource. It is safe to call more than once.
func (h *Host) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	h.running.Store(false)

	if h.touch != nil {
		h.touch.Close()
	}
	if h.text != nil {
		h.text.cache.destroy()
	}
	if h.fonts != nil {
		h.fonts.close()
	}
	if h.window != nil {
		h.window.destroy()
	}
	h.input.Close()

	ttf.Quit()
	img.Quit()
	sdl.Quit()
}

// Settings fills the host-specific controller settings.
func (h *Host) Settings(env *app.Env) sectiondeck.Settings {
	s := env.Config.Settings()
	s.Clock = h.clock
	s.Logger = h.logger
	return s
}

func (h *Host) Deck(ctx context.Context, env *app.Env, in app.DeckInput) (app.DeckResult, error) {
	width, height := h.window.Size()
	screen, err := h.openDeck(env, in, width, height)
	if err != nil {
		return app.DeckResult{}, err
	}
	defer screen.close()
	return screen.run(ctx)
}

// openDeck loads the sections and starts a session sized to the window. A
// host without a window gets panels without images.
func (h *Host) openDeck(env *app.Env, in app.DeckInput, width, height int32) (*deckScreen, error) {
	if len(env.Config.Panels) == 0 {
		return nil, sectiondeck.ErrNoPanels
	}

	settings := h.Settings(env)
	panelWidth := width - navColumnWidth

	var scroll *scroller
	if settings.Layout == constants.LayoutLinearScroll {
		scroll = newScroller(len(env.Config.Panels), float64(height))
	}

	var renderer *sdl.Renderer
	if h.window != nil {
		renderer = h.window.Renderer
	}
	surfaces, panels := loadPanels(renderer, env.Config.Panels, scroll, h.logger)

	d := newDeckScreen(h, env, surfaces, scroll, panelWidth, height)
	settings.InView = d.inView
	settings.Binder = sectiondeck.InputBinderFunc(d.bind)

	session, err := app.NewSession(env, panels, settings, in)
	if err != nil {
		releasePanels(surfaces)
		return nil, err
	}
	d.session = session
	return d, nil
}

func (h *Host) Cookies(ctx context.Context, env *app.Env) (app.CookiesResult, error) {
	width, height := h.window.Size()
	screen := &cookiesScreen{
		host:   h,
		env:    env,
		page:   app.NewCookiesPage(env.Banner),
		width:  width,
		height: height,
	}
	return screen.run(ctx)
}

// frame waits for input for up to one frame and hands every pending event
// to handle. It returns false once the host is stopped or ctx is done.
func (h *Host) frame(ctx context.Context, handle func(sdl.Event)) bool {
	if !h.running.Load() || ctx.Err() != nil {
		return false
	}
	if event := sdl.WaitEventTimeout(16); event != nil {
		handle(event)
		for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			handle(event)
		}
	}
	return h.running.Load()
}

// stopped maps a frame loop exit to the error the router expects.
func (h *Host) stopped(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sectiondeck.ErrCancelled
}
