package sdlhost

import (
	"context"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	cookieRowHeight = 64
	cookieMargin    = 48
)

// cookiesScreen runs the cookie settings page.
type cookiesScreen struct {
	host   *Host
	env    *app.Env
	page   *app.CookiesPage
	err    error
	width  int32
	height int32
}

func (s *cookiesScreen) run(ctx context.Context) (app.CookiesResult, error) {
	for s.host.frame(ctx, func(e sdl.Event) { s.handleEvent(ctx, e) }) {
		if s.err != nil {
			return app.CookiesResult{}, s.err
		}
		if res, done := s.page.Done(); done {
			return res, nil
		}
		s.env.Banner.Update()
		s.render()
		s.host.window.Present()
	}
	return app.CookiesResult{}, s.host.stopped(ctx)
}

func (s *cookiesScreen) handleEvent(ctx context.Context, event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.host.Stop()

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT || e.State != sdl.PRESSED {
			return
		}
		p := sdl.Point{X: e.X, Y: e.Y}
		for i, row := range s.page.Rows() {
			r := s.rowRect(i)
			if p.InRect(&r) {
				s.err = s.page.Activate(ctx, row)
				return
			}
		}

	default:
		if in := s.host.input.Process(event); in != nil && in.Pressed {
			s.err = s.page.HandleKey(ctx, in.Key)
		}
	}
}

func (s *cookiesScreen) rowRect(i int) sdl.Rect {
	top := s.height/2 - int32(len(s.page.Rows()))*cookieRowHeight/2
	return sdl.Rect{X: cookieMargin, Y: top + int32(i)*cookieRowHeight, W: s.width - cookieMargin*2, H: cookieRowHeight - 8}
}

func (s *cookiesScreen) render() {
	r := s.host.window.Renderer
	theme := s.host.theme
	fonts := s.host.fonts
	text := s.host.text

	setColor(r, theme.BackgroundColor)
	r.Clear()

	text.drawCentered(fonts.Title, s.env.Text.T("ConsentTitle"), theme.TextColor, s.width/2, cookieMargin)

	for i, row := range s.page.Rows() {
		rect := s.rowRect(i)
		if row == s.page.Cursor() {
			setColor(r, theme.AccentColor)
		} else {
			setColor(r, theme.PanelColor)
		}
		r.FillRect(&rect)

		x := rect.X + 16
		if row.IsToggle() {
			box := sdl.Rect{X: x, Y: rect.Y + (rect.H-24)/2, W: 24, H: 24}
			setColor(r, theme.TextColor)
			if s.page.Checked(row) {
				r.FillRect(&box)
			} else {
				r.DrawRect(&box)
			}
			x += 40
		}

		tex, w, h := text.texture(fonts.Medium, s.env.Text.T(row.MessageID()), theme.TextColor, 0)
		if tex != nil {
			r.Copy(tex, nil, &sdl.Rect{X: x, Y: rect.Y + (rect.H-h)/2, W: w, H: h})
		}
	}
}
