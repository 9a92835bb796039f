package app

import (
	"context"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
)

// Session is one run of the deck screen: the controller, the widgets that
// observe it and the routing of non-navigation keys. Hosts translate raw
// input into Keys and call into it from their frame loop.
type Session struct {
	Controller *sectiondeck.Controller
	Nav        *sectiondeck.SideNav

	env   *Env
	holds map[int]*sectiondeck.HoldButton

	done   bool
	result DeckResult
}

// NewSession creates the controller over panels and restores the section in
// in.Resume, if any. Panels flagged with hold in the config get a
// hold-to-advance button.
func NewSession(env *Env, panels []sectiondeck.Panel, settings sectiondeck.Settings, in DeckInput) (*Session, error) {
	if settings.Logger == nil {
		settings.Logger = env.Logger
	}

	c, err := sectiondeck.New(panels, settings)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Controller: c,
		Nav:        sectiondeck.NewSideNav(c),
		env:        env,
		holds:      make(map[int]*sectiondeck.HoldButton),
	}

	for i, p := range env.Config.Panels {
		if !p.Hold || i >= len(panels) {
			continue
		}
		s.holds[i] = sectiondeck.NewHoldButton(c.ActiveQuery(i), func() { c.Next() }, env.Config.HoldDuration(), settings.Clock)
	}

	if in.Resume != nil {
		c.Restore(in.Resume.Section)
	}

	return s, nil
}

// Hold returns the hold button of the current section, or nil.
func (s *Session) Hold() *sectiondeck.HoldButton {
	return s.holds[s.Controller.Current()]
}

// HasHold reports whether section index carries a hold button.
func (s *Session) HasHold(index int) bool {
	_, ok := s.holds[index]
	return ok
}

// KeyDown routes a key press. repeat is true for auto-repeated presses. It
// returns true when the key was consumed.
func (s *Session) KeyDown(ctx context.Context, key constants.Key, repeat bool) bool {
	if s.done {
		return false
	}

	banner := s.env.Banner
	if banner.Visible() {
		switch key {
		case constants.KeyConfirm:
			s.logErr(banner.AcceptAll(ctx), "accept cookies")
			return true
		case constants.KeyCancel:
			s.logErr(banner.RejectAll(ctx), "reject cookies")
			return true
		case constants.KeyCustomize:
			s.finish(DeckActionCookies)
			return true
		}
	}

	switch key {
	case constants.KeyQuit:
		s.finish(DeckActionQuit)
		return true
	case constants.KeyConsent:
		s.finish(DeckActionCookies)
		return true
	case constants.KeyLanguage:
		if repeat {
			return true
		}
		s.logErr(s.env.Text.Toggle(ctx), "switch language")
		return true
	case constants.KeyHold:
		if hb := s.Hold(); hb != nil {
			return hb.KeyDown(repeat)
		}
		return false
	}

	return s.Controller.HandleKey(key)
}

// KeyUp routes a key release.
func (s *Session) KeyUp(key constants.Key) {
	if key != constants.KeyHold {
		return
	}
	for _, hb := range s.holds {
		hb.KeyUp()
	}
}

// Update advances the banner and the hold buttons. Call it every frame.
func (s *Session) Update() {
	s.env.Banner.Update()
	for _, hb := range s.holds {
		hb.Update()
	}
}

// Quit ends the session as if the quit key was pressed.
func (s *Session) Quit() {
	s.finish(DeckActionQuit)
}

// Done returns the screen result once the visitor has left.
func (s *Session) Done() (DeckResult, bool) {
	return s.result, s.done
}

// Close tears the controller and side nav down. It is safe to call more than
// once.
func (s *Session) Close() {
	s.Nav.Detach()
	s.Controller.Close()
}

func (s *Session) finish(action DeckAction) {
	s.done = true
	s.result = DeckResult{
		Action: action,
		Resume: &DeckResume{Section: s.Controller.Current()},
	}
}

func (s *Session) logErr(err error, op string) {
	if err != nil {
		s.env.Logger.Error("Preference update failed", "op", op, "error", err)
	}
}
