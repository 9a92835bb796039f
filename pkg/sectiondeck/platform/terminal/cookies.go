package terminal

import (
	"context"
	"strings"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type cookiesModel struct {
	ctx  context.Context
	env  *app.Env
	page *app.CookiesPage
	keys keyMap
	err  error

	width, height int
}

func (m *cookiesModel) Init() tea.Cmd { return nil }

func (m *cookiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if err := m.page.HandleKey(m.ctx, m.keys.lookup(msg)); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}

	if _, done := m.page.Done(); done {
		return m, tea.Quit
	}
	return m, nil
}

func (m *cookiesModel) View() string {
	text := m.env.Text

	lines := []string{
		titleStyle.Render(text.T("ConsentTitle")),
		bodyStyle.Render(text.T("ConsentBody")),
		"",
	}
	for _, row := range m.page.Rows() {
		label := text.T(row.MessageID())
		if row.IsToggle() {
			box := "[ ]"
			if m.page.Checked(row) {
				box = "[x]"
			}
			label = box + " " + label
		}
		style := rowStyle
		if row == m.page.Cursor() {
			style = rowFocusedStyle
		}
		lines = append(lines, style.Render(label))
	}
	lines = append(lines, "", mutedStyle.Render(text.T("HelpKeys")))

	content := bannerStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
