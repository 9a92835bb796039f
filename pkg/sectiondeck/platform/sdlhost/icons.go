package sdlhost

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"
)

// icon is an embedded SVG document with a cache name.
type icon struct {
	name string
	doc  string
}

var (
	iconArrowNext = icon{"arrow-next", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M4 11h12.2l-5.6-5.6L12 4l8 8-8 8-1.4-1.4 5.6-5.6H4z" fill="#FFFFFF"/>
</svg>`}

	iconArrowDown = icon{"arrow-down", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M11 4v12.2l-5.6-5.6L4 12l8 8 8-8-1.4-1.4-5.6 5.6V4z" fill="#FFFFFF"/>
</svg>`}

	iconSpacebar = icon{"spacebar", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 24">
<path d="M2 10v8h44v-8h-4v4H6v-4z" fill="#FFFFFF"/>
</svg>`}
)

// rasterizeSVG draws an SVG document into a w×h RGBA image.
func rasterizeSVG(doc string, w, h int) (*image.RGBA, error) {
	parsed, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	parsed.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	parsed.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// iconTexture returns a cached texture for an SVG icon, tinted by color.
func (tr *textRenderer) iconTexture(ic icon, w, h int32, color sdl.Color) *sdl.Texture {
	key := fmt.Sprintf("i|%s|%d|%d|%02x%02x%02x", ic.name, w, h, color.R, color.G, color.B)
	if tex := tr.cache.get(key); tex != nil {
		return tex
	}

	img, err := rasterizeSVG(ic.doc, int(w), int(h))
	if err != nil {
		return nil
	}

	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&img.Pix[0]), w, h, 32, int32(img.Stride), uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil
	}
	defer surface.Free()

	tex, err := tr.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	tex.SetColorMod(color.R, color.G, color.B)
	tr.cache.set(key, tex)
	return tex
}

// drawIcon renders an icon into rect.
func (tr *textRenderer) drawIcon(ic icon, rect sdl.Rect, color sdl.Color) {
	if tex := tr.iconTexture(ic, rect.W, rect.H, color); tex != nil {
		tr.renderer.Copy(tex, nil, &rect)
	}
}
