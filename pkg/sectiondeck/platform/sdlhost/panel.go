package sdlhost

import (
	"log/slog"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// surfacePanel is a section drawn by the SDL host.
type surfacePanel struct {
	config.Panel
	index  int
	active bool
	image  *sdl.Texture

	// scroll is set in linear-scroll mode only.
	scroll *scroller
}

func (p *surfacePanel) SetActive(active bool) { p.active = active }

func (p *surfacePanel) ScrollIntoView(smooth bool) {
	if p.scroll != nil {
		p.scroll.ScrollTo(p.index, smooth)
	}
}

// loadPanels builds the sections and loads their images. A missing image is
// logged and the section is drawn without it.
func loadPanels(renderer *sdl.Renderer, cfg []config.Panel, scroll *scroller, logger *slog.Logger) ([]*surfacePanel, []sectiondeck.Panel) {
	surfaces := make([]*surfacePanel, len(cfg))
	panels := make([]sectiondeck.Panel, len(cfg))
	for i, c := range cfg {
		p := &surfacePanel{Panel: c, index: i, scroll: scroll}
		if c.Image != "" && renderer != nil {
			tex, err := img.LoadTexture(renderer, c.Image)
			if err != nil {
				logger.Warn("Failed to load section image", "section", i, "path", c.Image, "error", err)
			} else {
				p.image = tex
			}
		}
		surfaces[i] = p
		panels[i] = p
	}
	return surfaces, panels
}

func releasePanels(panels []*surfacePanel) {
	for _, p := range panels {
		if p.image != nil {
			p.image.Destroy()
			p.image = nil
		}
	}
}
