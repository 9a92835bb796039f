package terminal

import (
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyOrder fixes lookup priority when a key string is bound twice.
var keyOrder = []constants.Key{
	constants.KeyQuit,
	constants.KeyConfirm,
	constants.KeyCancel,
	constants.KeyCustomize,
	constants.KeyConsent,
	constants.KeyLanguage,
	constants.KeyHold,
	constants.KeyFirst,
	constants.KeyLast,
	constants.KeyNext,
	constants.KeyPrevious,
}

type keyMap map[constants.Key]key.Binding

func defaultKeyMap() keyMap {
	return keyMap{
		constants.KeyNext: key.NewBinding(
			key.WithKeys("right", "down", "pgdown", "j"),
			key.WithHelp("→", "next"),
		),
		constants.KeyPrevious: key.NewBinding(
			key.WithKeys("left", "up", "pgup", "k"),
			key.WithHelp("←", "previous"),
		),
		constants.KeyFirst: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first"),
		),
		constants.KeyLast: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
		constants.KeyHold: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "hold"),
		),
		constants.KeyConfirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "accept"),
		),
		constants.KeyCancel: key.NewBinding(
			key.WithKeys("n", "backspace"),
			key.WithHelp("n", "reject"),
		),
		constants.KeyCustomize: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "customize"),
		),
		constants.KeyConsent: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cookies"),
		),
		constants.KeyLanguage: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
		constants.KeyQuit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// withOverrides replaces the keys of every action listed in overrides.
func (km keyMap) withOverrides(overrides map[constants.Key][]string) keyMap {
	out := make(keyMap, len(km))
	for k, b := range km {
		out[k] = b
	}
	for k, names := range overrides {
		if len(names) == 0 {
			continue
		}
		b := out[k]
		b.SetKeys(names...)
		out[k] = b
	}
	return out
}

func (km keyMap) lookup(msg tea.KeyMsg) constants.Key {
	for _, k := range keyOrder {
		if b, ok := km[k]; ok && key.Matches(msg, b) {
			return k
		}
	}
	return constants.KeyNone
}
