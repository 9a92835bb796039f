// Package app wires the deck, the cookie settings page and the shared
// services (preferences, translations, consent) into a screen flow that any
// host can drive.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/consent"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/i18n"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/router"
)

const (
	ScreenDeck router.Screen = iota
	ScreenCookies
)

// DeckAction is why the deck screen returned.
type DeckAction int

const (
	DeckActionQuit DeckAction = iota
	DeckActionCookies
)

type DeckInput struct {
	Resume *DeckResume // nil on the first visit
}

type DeckResult struct {
	Action DeckAction
	Resume *DeckResume
}

// DeckResume is where the visitor was when the deck screen returned.
type DeckResume struct {
	Section int
}

type CookiesResult struct {
	Saved bool
}

// Host runs the two screens on a concrete surface. Both block until the
// visitor leaves the screen. Returning sectiondeck.ErrCancelled ends the
// session cleanly.
type Host interface {
	Deck(ctx context.Context, env *Env, in DeckInput) (DeckResult, error)
	Cookies(ctx context.Context, env *Env) (CookiesResult, error)
}

// Env is the state shared by every screen of a session.
type Env struct {
	Config *config.Config
	Store  prefs.Store
	Text   *i18n.Translator
	Banner *consent.Banner
	Logger *slog.Logger
}

// NewEnv loads the translator and the consent banner from store.
func NewEnv(ctx context.Context, cfg *config.Config, store prefs.Store, logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = sectiondeck.GetLogger()
	}

	text, err := i18n.New(ctx, store, cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	banner, err := consent.New(ctx, store, consent.Options{
		Delay:  cfg.ConsentDelay(),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load consent: %w", err)
	}

	return &Env{
		Config: cfg,
		Store:  store,
		Text:   text,
		Banner: banner,
		Logger: logger,
	}, nil
}

// Run drives host through the deck and the cookie settings page until the
// visitor quits.
func Run(ctx context.Context, host Host, env *Env) error {
	r := router.New(env.Logger)

	r.Register(ScreenDeck, "deck", func(ctx context.Context, input any) (any, error) {
		return host.Deck(ctx, env, input.(DeckInput))
	})
	r.Register(ScreenCookies, "cookies", func(ctx context.Context, _ any) (any, error) {
		return host.Cookies(ctx, env)
	})

	r.OnTransition(transition)

	err := r.Run(ctx, ScreenDeck, DeckInput{})
	if sectiondeck.IsCancelled(err) {
		return nil
	}
	return err
}

func transition(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
	switch from {
	case ScreenDeck:
		res := result.(DeckResult)
		if res.Action == DeckActionCookies {
			stack.Push(from, DeckInput{}, res.Resume)
			return ScreenCookies, nil
		}

	case ScreenCookies:
		if entry := stack.Pop(); entry != nil {
			in := entry.Input.(DeckInput)
			if resume, ok := entry.Resume.(*DeckResume); ok {
				in.Resume = resume
			}
			return entry.Screen, in
		}
		return ScreenDeck, DeckInput{}
	}
	return router.ScreenExit, nil
}
