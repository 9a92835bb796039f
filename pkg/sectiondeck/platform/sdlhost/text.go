package sdlhost

import (
	"errors"
	"fmt"
	"os"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// fontCandidates are tried in order when no font is configured.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/mnt/SDCARD/System/fonts/Cannoli.ttf",
}

// Font sizes relative to the configured base size.
type fonts struct {
	Title  *ttf.Font
	Medium *ttf.Font
	Small  *ttf.Font
}

func findFont(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	for _, p := range fontCandidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", sectiondeck.NewHostError("find_font", errors.New("no font configured and none of the system fonts exist"))
}

func openFonts(path string, base int) (*fonts, error) {
	if base <= 0 {
		base = 28
	}
	f := &fonts{}
	var err error
	if f.Title, err = ttf.OpenFont(path, base*2); err != nil {
		return nil, sectiondeck.NewHostError("open_font", err)
	}
	if f.Medium, err = ttf.OpenFont(path, base); err != nil {
		f.close()
		return nil, sectiondeck.NewHostError("open_font", err)
	}
	if f.Small, err = ttf.OpenFont(path, base*2/3); err != nil {
		f.close()
		return nil, sectiondeck.NewHostError("open_font", err)
	}
	return f, nil
}

func (f *fonts) close() {
	for _, font := range []*ttf.Font{f.Title, f.Medium, f.Small} {
		if font != nil {
			font.Close()
		}
	}
}

// textRenderer draws strings through a texture cache.
type textRenderer struct {
	renderer *sdl.Renderer
	cache    *textureCache
}

func textKey(font *ttf.Font, text string, color sdl.Color, wrap int32) string {
	return fmt.Sprintf("t|%p|%d|%02x%02x%02x%02x|%s", font, wrap, color.R, color.G, color.B, color.A, text)
}

// texture renders text once and returns the cached texture with its size.
// wrap > 0 wraps the text to that width.
func (tr *textRenderer) texture(font *ttf.Font, text string, color sdl.Color, wrap int32) (*sdl.Texture, int32, int32) {
	if text == "" {
		return nil, 0, 0
	}

	key := textKey(font, text, color, wrap)
	if tex := tr.cache.get(key); tex != nil {
		_, _, w, h, err := tex.Query()
		if err == nil {
			return tex, w, h
		}
	}

	var surface *sdl.Surface
	var err error
	if wrap > 0 {
		surface, err = font.RenderUTF8BlendedWrapped(text, color, int(wrap))
	} else {
		surface, err = font.RenderUTF8Blended(text, color)
	}
	if err != nil {
		return nil, 0, 0
	}
	defer surface.Free()

	tex, err := tr.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, 0, 0
	}
	tr.cache.set(key, tex)
	return tex, surface.W, surface.H
}

// draw renders text with its top-left corner at x, y and returns its size.
func (tr *textRenderer) draw(font *ttf.Font, text string, color sdl.Color, x, y, wrap int32) (int32, int32) {
	tex, w, h := tr.texture(font, text, color, wrap)
	if tex == nil {
		return 0, 0
	}
	tr.renderer.Copy(tex, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
	return w, h
}

// drawCentered renders text centered on cx.
func (tr *textRenderer) drawCentered(font *ttf.Font, text string, color sdl.Color, cx, y int32) (int32, int32) {
	tex, w, h := tr.texture(font, text, color, 0)
	if tex == nil {
		return 0, 0
	}
	tr.renderer.Copy(tex, nil, &sdl.Rect{X: cx - w/2, Y: y, W: w, H: h})
	return w, h
}
