package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tickInterval = 50 * time.Millisecond

	// A terminal wheel notch carries no magnitude; three notches make one
	// section with the default threshold.
	wheelNotch = 10.0

	// Terminals report no key release. A held key auto-repeats, so the hold
	// button is released once no repeat has arrived for this long.
	holdReleaseAfter = 700 * time.Millisecond
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// textPanel is a section rendered as styled text.
type textPanel struct {
	config.Panel
	active bool
}

func (p *textPanel) SetActive(active bool) { p.active = active }

// The terminal shows one section at a time; there is nothing to scroll.
func (p *textPanel) ScrollIntoView(bool) {}

type deckModel struct {
	ctx     context.Context
	env     *app.Env
	session *app.Session
	panels  []*textPanel
	keys    keyMap
	now     func() time.Time

	width, height int
	shown         bool
	lastHold      time.Time
}

func newDeckModel(ctx context.Context, env *app.Env, session *app.Session, panels []*textPanel, keys keyMap, now func() time.Time) *deckModel {
	return &deckModel{
		ctx:     ctx,
		env:     env,
		session: session,
		panels:  panels,
		keys:    keys,
		now:     now,
	}
}

func (m *deckModel) Init() tea.Cmd {
	return tick()
}

func (m *deckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.shown {
			m.shown = true
			m.session.Controller.HandleContainerVisibility(true)
		}

	case tea.KeyMsg:
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		m.releaseStaleHold()
		m.session.Update()
		if _, done := m.session.Done(); done {
			return m, tea.Quit
		}
		return m, tick()
	}

	if _, done := m.session.Done(); done {
		return m, tea.Quit
	}
	return m, nil
}

func (m *deckModel) handleKey(msg tea.KeyMsg) {
	k := m.keys.lookup(msg)
	if k == constants.KeyNone {
		return
	}

	repeat := false
	if k == constants.KeyHold {
		hb := m.session.Hold()
		repeat = hb != nil && hb.Pressed()
		m.lastHold = m.now()
	}
	m.session.KeyDown(m.ctx, k, repeat)
}

func (m *deckModel) releaseStaleHold() {
	if m.lastHold.IsZero() || m.now().Sub(m.lastHold) < holdReleaseAfter {
		return
	}
	m.lastHold = time.Time{}
	m.session.KeyUp(constants.KeyHold)
}

func (m *deckModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	c := m.session.Controller
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		c.HandleWheel(0, wheelNotch)
	case tea.MouseButtonWheelUp:
		c.HandleWheel(0, -wheelNotch)
	case tea.MouseButtonWheelRight:
		c.HandleWheel(wheelNotch, 0)
	case tea.MouseButtonWheelLeft:
		c.HandleWheel(-wheelNotch, 0)
	case tea.MouseButtonLeft:
		// The dots column sits at the right edge; rows map to sections.
		if m.width > 0 && msg.X >= m.width-navWidth {
			if i := msg.Y - m.dotsTop(); i >= 0 && i < c.Total() {
				m.session.Nav.Click(i)
			}
		}
	}
}

const navWidth = 10

func (m *deckModel) dotsTop() int {
	return max(0, (m.height-m.session.Nav.Total())/2)
}

func (m *deckModel) View() string {
	if m.width == 0 {
		return ""
	}

	text := m.env.Text
	c := m.session.Controller
	if c.Total() == 0 {
		return mutedStyle.Render(text.T("DeckEmpty"))
	}

	footer := m.footer()
	bodyHeight := max(3, m.height-lipgloss.Height(footer))

	current := m.panels[c.Current()]
	section := panelStyle(m.width-navWidth, bodyHeight, current.Background).Render(m.renderPanel(current, c.Current()))
	page := lipgloss.JoinHorizontal(lipgloss.Top, section, m.renderNav(bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, page, footer)
}

func (m *deckModel) renderPanel(p *textPanel, index int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	if p.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(p.Subtitle))
	}
	if p.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(bodyStyle.Width(max(10, m.width-navWidth-6)).Render(p.Body))
	}

	if m.session.HasHold(index) {
		b.WriteString("\n\n")
		b.WriteString(m.renderHold())
	}

	if ind := m.session.Controller.Indicator(); ind.Visible() {
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render(constants.ArrowNext + " " + m.env.Text.T(ind.MessageID())))
	}
	return b.String()
}

func (m *deckModel) renderHold() string {
	const width = 20
	progress := 0.0
	if hb := m.session.Hold(); hb != nil {
		progress = hb.Progress()
	}
	filled := int(progress * width)
	bar := strings.Repeat(constants.HoldBar, filled) + mutedStyle.Render(strings.Repeat(constants.HoldBar, width-filled))
	return bar + "  " + mutedStyle.Render(m.env.Text.T("HoldToAdvance"))
}

func (m *deckModel) renderNav(height int) string {
	nav := m.session.Nav
	lines := make([]string, 0, nav.Total()+3)
	for _, active := range nav.Dots() {
		if active {
			lines = append(lines, dotStyle.Render(constants.DotActive))
		} else {
			lines = append(lines, mutedStyle.Render(constants.DotInactive))
		}
	}
	lines = append(lines, "", mutedStyle.Render(nav.Label()))
	if nav.HasNext() {
		lines = append(lines, dotStyle.Render(constants.ArrowNext))
	}
	return lipgloss.Place(navWidth, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func (m *deckModel) footer() string {
	text := m.env.Text
	parts := []string{m.renderTrack()}

	if m.env.Banner.Visible() {
		banner := fmt.Sprintf("%s\n%s\n%s · %s · %s",
			titleStyle.Render(text.T("ConsentTitle")),
			text.T("ConsentBody"),
			"enter "+text.T("ConsentAcceptAll"),
			"n "+text.T("ConsentRejectAll"),
			"p "+text.T("ConsentCustomize"))
		parts = append(parts, bannerStyle.Width(m.width-2).Render(banner))
	}

	parts = append(parts, mutedStyle.Render(text.T("HelpKeys")))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTrack draws the slide position, following the controller's
// interpolated track while a transition runs.
func (m *deckModel) renderTrack() string {
	c := m.session.Controller
	width := max(1, m.width)
	if c.Total() < 2 {
		return mutedStyle.Render(strings.Repeat("─", width))
	}
	pos := int(c.TrackPosition() / float64(c.Total()-1) * float64(width-1))
	return mutedStyle.Render(strings.Repeat("─", pos)) +
		dotStyle.Render(constants.DotActive) +
		mutedStyle.Render(strings.Repeat("─", width-1-pos))
}

func buildPanels(cfg []config.Panel) ([]*textPanel, []sectiondeck.Panel) {
	text := make([]*textPanel, len(cfg))
	panels := make([]sectiondeck.Panel, len(cfg))
	for i, p := range cfg {
		text[i] = &textPanel{Panel: p}
		panels[i] = text[i]
	}
	return text, panels
}
