package sdlhost

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// deckScreen runs the frame loop of one deck session.
type deckScreen struct {
	host    *Host
	env     *app.Env
	session *app.Session
	panels  []*surfacePanel
	scroll  *scroller // nil in paged mode

	directional internal.DirectionalInput
	nav         navLayout
	listeners   sectiondeck.Listener // set while the controller is bound
	shown       bool
	pointerHold *sectiondeck.HoldButton
	touchClosed bool

	panelWidth, height int32
}

func newDeckScreen(h *Host, env *app.Env, panels []*surfacePanel, scroll *scroller, panelWidth, height int32) *deckScreen {
	d := &deckScreen{
		host:        h,
		env:         env,
		panels:      panels,
		scroll:      scroll,
		directional: internal.NewDirectionalInputWithTiming(h.repeatDelay, h.repeatInterval),
		nav:         layoutNav(panelWidth+navColumnWidth, height, len(panels)),
		shown:       true,
		panelWidth:  panelWidth,
		height:      height,
	}
	d.directional.SetClock(h.clock.Now)
	return d
}

func (d *deckScreen) close() {
	d.session.Close()
	releasePanels(d.panels)
}

// bind routes window input to the controller for the given channels until
// the returned func is called.
func (d *deckScreen) bind(_ *sectiondeck.Controller, listeners sectiondeck.Listener) func() {
	d.listeners = listeners
	d.host.logger.Debug("Deck input bound", "listeners", fmt.Sprintf("%05b", uint8(listeners)))
	return func() {
		d.listeners = 0
		d.host.logger.Debug("Deck input unbound")
	}
}

func (d *deckScreen) listening(l sectiondeck.Listener) bool {
	return d.listeners.Has(l)
}

// inView reports whether the deck covers the middle of the window. The
// consent banner overlays the bottom quarter.
func (d *deckScreen) inView() bool {
	if !d.shown {
		return false
	}
	covered := d.height
	if d.env.Banner.Visible() {
		covered -= d.height / 4
	}
	deck := internal.Span{Start: 0, Length: float64(covered)}
	return deck.CrossesCenter(float64(d.height))
}

func (d *deckScreen) linear() bool {
	return d.scroll != nil
}

func (d *deckScreen) run(ctx context.Context) (app.DeckResult, error) {
	if d.listening(sectiondeck.ListenContainer) {
		d.session.Controller.HandleContainerVisibility(true)
	}

	for d.host.frame(ctx, func(e sdl.Event) { d.handleEvent(ctx, e) }) {
		d.drainTouch()

		if dir := d.directional.Update(); dir != internal.DirectionNone {
			d.key(ctx, dir.Key(), true)
		}

		d.session.Update()
		if d.linear() {
			d.scroll.Update()
		}
		d.reportVisibility()

		if res, done := d.session.Done(); done {
			return res, nil
		}

		d.render()
		d.host.window.Present()
	}
	return app.DeckResult{}, d.host.stopped(ctx)
}

func (d *deckScreen) handleEvent(ctx context.Context, event sdl.Event) {
	c := d.session.Controller

	switch e := event.(type) {
	case *sdl.QuitEvent:
		d.session.Quit()

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
			d.setShown(false)
		case sdl.WINDOWEVENT_SHOWN, sdl.WINDOWEVENT_RESTORED:
			d.setShown(true)
		}

	case *sdl.MouseWheelEvent:
		dx, dy := wheelDelta(e)
		switch {
		case d.listening(sectiondeck.ListenWheel):
			c.HandleWheel(dx, dy)
		case d.linear():
			d.scroll.ScrollBy(dy)
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			d.click(sdl.Point{X: e.X, Y: e.Y}, e.State == sdl.PRESSED)
		}

	case *sdl.TouchFingerEvent:
		p := sectiondeck.Point{X: float64(e.X) * float64(d.panelWidth+navColumnWidth), Y: float64(e.Y) * float64(d.height)}
		switch {
		case e.Type == sdl.FINGERMOTION && d.linear():
			d.scroll.ScrollBy(-float64(e.DY) * float64(d.height))
		case !d.listening(sectiondeck.ListenTouch):
			// unbound
		case e.Type == sdl.FINGERDOWN:
			c.HandleTouchStart(p)
		case e.Type == sdl.FINGERUP:
			c.HandleTouchEnd(p)
		}

	default:
		if in := d.host.input.Process(event); in != nil {
			d.input(ctx, in)
		}
	}
}

func (d *deckScreen) setShown(shown bool) {
	d.shown = shown
	if d.listening(sectiondeck.ListenContainer) {
		d.session.Controller.HandleContainerVisibility(shown)
	}
}

// input handles a mapped key. SDL's own key repeat is ignored; held
// directions repeat through DirectionalInput so the pace is configurable.
func (d *deckScreen) input(ctx context.Context, in *InputEvent) {
	if !in.Pressed {
		d.directional.SetHeld(in.Key, false)
		d.session.KeyUp(in.Key)
		return
	}
	if in.Repeat {
		return
	}
	d.directional.SetHeld(in.Key, true)
	d.key(ctx, in.Key, false)
}

func (d *deckScreen) key(ctx context.Context, key constants.Key, repeat bool) {
	if d.session.KeyDown(ctx, key, repeat) || !d.linear() {
		return
	}

	// A linear deck has no keyboard listener; keys scroll the page.
	current := d.session.Controller.Current()
	switch key {
	case constants.KeyNext:
		d.scroll.ScrollTo(current+1, true)
	case constants.KeyPrevious:
		d.scroll.ScrollTo(current-1, true)
	case constants.KeyFirst:
		d.scroll.ScrollTo(0, true)
	case constants.KeyLast:
		d.scroll.ScrollTo(len(d.panels)-1, true)
	}
}

func (d *deckScreen) click(p sdl.Point, pressed bool) {
	if !pressed {
		if d.pointerHold != nil {
			d.pointerHold.Release()
			d.pointerHold = nil
		}
		return
	}

	if i, ok := d.nav.dotAt(p); ok {
		d.session.Nav.Click(i)
		return
	}
	if d.nav.nextAt(p) {
		d.session.Nav.Next()
		return
	}

	current := d.session.Controller.Current()
	if hb := d.session.Hold(); hb != nil {
		r := holdRect(d.panelRect(current))
		if p.InRect(&r) && hb.Press() {
			d.pointerHold = hb
		}
	}
}

func (d *deckScreen) drainTouch() {
	if d.host.touch == nil || d.touchClosed {
		return
	}
	c := d.session.Controller
	w, h := float64(d.panelWidth+navColumnWidth), float64(d.height)
	for {
		select {
		case sample, ok := <-d.host.touch.C:
			if !ok {
				d.touchClosed = true
				return
			}
			if !d.listening(sectiondeck.ListenTouch) {
				continue
			}
			p := sectiondeck.Point{X: sample.X * w, Y: sample.Y * h}
			if sample.Down {
				c.HandleTouchStart(p)
			} else {
				c.HandleTouchEnd(p)
			}
		default:
			return
		}
	}
}

// reportVisibility hands every section's visible ratio to the controller,
// which acts only when one crosses the threshold.
func (d *deckScreen) reportVisibility() {
	if !d.linear() || !d.listening(sectiondeck.ListenVisibility) {
		return
	}
	for i, r := range d.scroll.Ratios() {
		d.session.Controller.HandleVisibility(i, r)
	}
}

// panelRect returns where section i is drawn this frame.
func (d *deckScreen) panelRect(i int) sdl.Rect {
	if d.linear() {
		span := d.scroll.Spans()[i]
		return sdl.Rect{X: 0, Y: int32(span.Start), W: d.panelWidth, H: d.height}
	}
	offset := pagedOffset(d.session.Controller.TrackPosition(), d.panelWidth)
	return sdl.Rect{X: int32(i)*d.panelWidth - offset, Y: 0, W: d.panelWidth, H: d.height}
}

func (d *deckScreen) render() {
	r := d.host.window.Renderer
	theme := d.host.theme

	setColor(r, theme.BackgroundColor)
	r.Clear()

	area := sdl.Rect{W: d.panelWidth, H: d.height}
	r.SetClipRect(&area)
	for i, p := range d.panels {
		rect := d.panelRect(i)
		if _, ok := rect.Intersect(&area); ok {
			d.renderPanel(p, rect)
		}
	}
	r.SetClipRect(nil)

	d.renderIndicator()
	d.renderNav()
	d.renderBanner()
}

func (d *deckScreen) renderPanel(p *surfacePanel, rect sdl.Rect) {
	r := d.host.window.Renderer
	theme := d.host.theme
	fonts := d.host.fonts
	text := d.host.text

	setColor(r, theme.panelColor(p.Background))
	r.FillRect(&rect)

	y := rect.Y + rect.H/6
	if p.image != nil {
		_, _, iw, ih, err := p.image.Query()
		if err == nil && iw > 0 && ih > 0 {
			maxH := rect.H / 3
			w, h := iw, ih
			if h > maxH {
				w, h = w*maxH/h, maxH
			}
			r.Copy(p.image, nil, &sdl.Rect{X: rect.X + (rect.W-w)/2, Y: y, W: w, H: h})
			y += h + 24
		}
	}

	cx := rect.X + rect.W/2
	_, th := text.drawCentered(fonts.Title, p.Title, theme.TextColor, cx, y)
	y += th + 12
	if p.Subtitle != "" {
		_, sh := text.drawCentered(fonts.Medium, p.Subtitle, theme.HintColor, cx, y)
		y += sh + 24
	}
	if p.Body != "" {
		text.draw(fonts.Medium, p.Body, theme.TextColor, rect.X+60, y, rect.W-120)
	}

	if d.session.HasHold(p.index) {
		d.renderHold(p.index, holdRect(rect))
	}
}

func (d *deckScreen) renderHold(index int, rect sdl.Rect) {
	r := d.host.window.Renderer
	theme := d.host.theme

	progress := 0.0
	if d.session.Controller.Current() == index {
		if hb := d.session.Hold(); hb != nil {
			progress = hb.Progress()
		}
	}

	setColor(r, theme.BannerColor)
	r.FillRect(&rect)
	fill := rect
	fill.W = int32(float64(rect.W) * progress)
	setColor(r, theme.AccentColor)
	r.FillRect(&fill)
	r.DrawRect(&rect)

	d.host.text.drawIcon(iconSpacebar, sdl.Rect{X: rect.X + 12, Y: rect.Y + rect.H/2 - 12, W: 48, H: 24}, theme.TextColor)
	label := d.env.Text.T("HoldToAdvance")
	tex, w, h := d.host.text.texture(d.host.fonts.Small, label, theme.TextColor, 0)
	if tex != nil {
		d.host.window.Renderer.Copy(tex, nil, &sdl.Rect{X: rect.X + 72, Y: rect.Y + (rect.H-h)/2, W: w, H: h})
	}
}

func (d *deckScreen) renderIndicator() {
	ind := d.session.Controller.Indicator()
	if !ind.Visible() {
		return
	}
	theme := d.host.theme
	ic := iconArrowNext
	if d.linear() {
		ic = iconArrowDown
	}

	cx := d.panelWidth / 2
	y := d.height - 96
	_, h := d.host.text.drawCentered(d.host.fonts.Small, d.env.Text.T(ind.MessageID()), theme.HintColor, cx, y)
	d.host.text.drawIcon(ic, sdl.Rect{X: cx - 16, Y: y + h + 8, W: 32, H: 32}, theme.HintColor)
}

func (d *deckScreen) renderNav() {
	r := d.host.window.Renderer
	theme := d.host.theme
	nav := d.session.Nav

	for i, active := range nav.Dots() {
		dot := d.nav.dots[i]
		if active {
			setColor(r, theme.AccentColor)
			r.FillRect(&dot)
		} else {
			setColor(r, theme.HintColor)
			r.DrawRect(&dot)
		}
	}

	d.host.text.drawCentered(d.host.fonts.Small, nav.Label(), theme.HintColor, d.nav.label.X, d.nav.label.Y)
	if nav.HasNext() {
		d.host.text.drawIcon(iconArrowNext, d.nav.next, theme.AccentColor)
	}
}

func (d *deckScreen) renderBanner() {
	banner := d.env.Banner
	if !banner.Visible() {
		return
	}
	r := d.host.window.Renderer
	theme := d.host.theme
	fonts := d.host.fonts
	text := d.env.Text
	width := d.panelWidth + navColumnWidth

	rect := sdl.Rect{X: 0, Y: d.height - d.height/4, W: width, H: d.height / 4}
	setColor(r, theme.BannerColor)
	r.FillRect(&rect)

	y := rect.Y + 16
	_, h := d.host.text.draw(fonts.Medium, text.T("ConsentTitle"), theme.TextColor, 24, y, 0)
	y += h + 8
	_, h = d.host.text.draw(fonts.Small, text.T("ConsentBody"), theme.TextColor, 24, y, width-48)
	y += h + 12
	actions := fmt.Sprintf("Enter  %s     N  %s     P  %s",
		text.T("ConsentAcceptAll"), text.T("ConsentRejectAll"), text.T("ConsentCustomize"))
	d.host.text.draw(fonts.Small, actions, theme.AccentColor, 24, y, 0)
}
