/*
Package raster converts between poster images and image.Image.

Each palette entry is a packed 0x00RRGGBB value. The high byte is ignored when
rendering and written as zero when importing; rendered colors are opaque.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/poster"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

var (
	errNoColors = errors.New("raster: palette needs at least one color")
	errTooLarge = errors.New("raster: image is too large")
)

// Color unpacks a palette value.
func Color(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// Value packs c into a palette value, dropping alpha.
func Value(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return r>>8<<16 | g>>8<<8 | b>>8
}

// Palette converts a poster palette to a color.Palette.
func Palette(p poster.Palette) color.Palette {
	cp := make(color.Palette, len(p))
	for i, v := range p {
		cp[i] = Color(v)
	}
	return cp
}

// Render returns m as an image.Paletted. The image is validated first as the
// decoder does not check pixels against the size or the palette.
func Render(m *poster.Image) (*image.Paletted, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	const maxSide = 1<<31 - 1
	if m.Width > maxSide || m.Height > maxSide {
		return nil, errTooLarge
	}

	pm := image.NewPaletted(image.Rect(0, 0, int(m.Width), int(m.Height)), Palette(m.Palette))
	copy(pm.Pix, m.Pixels)

	return pm, nil
}

// Scale enlarges m by an integer factor using nearest neighbour sampling so
// that no new colors are introduced.
func Scale(m *image.Paletted, factor int) *image.Paletted {
	if factor <= 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), m.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

// FromImage converts m to a poster image using no more than colors palette
// entries. A paletted image that already fits is used as is, anything else
// is quantized, optionally with Floyd-Steinberg dithering.
func FromImage(m image.Image, colors int, dither bool) (*poster.Image, error) {
	if colors < 1 {
		return nil, errNoColors
	}
	if colors > poster.MaxPalette {
		colors = poster.MaxPalette
	}

	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > colors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), q.Quantize(make(color.Palette, 0, colors), m))
		if dither {
			draw.FloydSteinberg.Draw(pm, pm.Bounds(), m, b.Min)
		} else {
			draw.Draw(pm, pm.Bounds(), m, b.Min, draw.Src)
		}
	}

	if len(pm.Palette) == 0 {
		return nil, errNoColors
	}

	out := &poster.Image{
		Width:   uint32(b.Dx()),
		Height:  uint32(b.Dy()),
		Palette: make(poster.Palette, len(pm.Palette)),
		Pixels:  make(poster.Pixels, 0, b.Dx()*b.Dy()),
	}
	for i, c := range pm.Palette {
		out.Palette[i] = Value(c)
	}

	r := pm.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := pm.PixOffset(r.Min.X, y)
		out.Pixels = append(out.Pixels, pm.Pix[i:i+r.Dx()]...)
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}

	return out, nil
}
