package sdlhost

import (
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/veandco/go-sdl2/sdl"
)

// Theme holds the colors the host draws with.
type Theme struct {
	AccentColor     sdl.Color // Active dot, hold progress, focused row
	TextColor       sdl.Color
	HintColor       sdl.Color // Nav label, help line
	BackgroundColor sdl.Color // Behind the deck
	PanelColor      sdl.Color // Sections without a configured background
	BannerColor     sdl.Color
}

// DefaultTheme is a dark theme with a teal accent.
func DefaultTheme() Theme {
	return Theme{
		AccentColor:     HexToColor(0x008080),
		TextColor:       HexToColor(0xFFFFFF),
		HintColor:       HexToColor(0xA0A0A0),
		BackgroundColor: HexToColor(0x000000),
		PanelColor:      HexToColor(0x1C1C1C),
		BannerColor:     HexToColor(0x2A2A2A),
	}
}

// HexToColor converts 0xRRGGBB to an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// panelColor returns the configured background of a section, or the theme's.
func (t Theme) panelColor(raw string) sdl.Color {
	if raw == "" {
		return t.PanelColor
	}
	c, err := config.ParseColor(raw)
	if err != nil {
		return t.PanelColor
	}
	return sdl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func setColor(r *sdl.Renderer, c sdl.Color) {
	r.SetDrawColor(c.R, c.G, c.B, c.A)
}
