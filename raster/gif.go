package raster

import (
	"errors"
	"fmt"
	"image"
	"image/gif"

	"github.com/bodgit/poster"
)

var errNoPages = errors.New("raster: collection has no pages")

// RenderCollection returns c as an animated GIF with one frame per page,
// each shown for delay hundredths of a second. The logical screen covers the
// collection size and every page.
func RenderCollection(c *poster.Collection, delay int) (*gif.GIF, error) {
	if len(c.Pages) == 0 {
		return nil, errNoPages
	}

	g := &gif.GIF{
		Config: image.Config{
			Width:  int(c.Width),
			Height: int(c.Height),
		},
	}

	for i := range c.Pages {
		pm, err := Render(&c.Pages[i])
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		b := pm.Bounds()
		if b.Dx() > g.Config.Width {
			g.Config.Width = b.Dx()
		}
		if b.Dy() > g.Config.Height {
			g.Config.Height = b.Dy()
		}

		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
	}

	return g, nil
}

// FromGIF converts every frame of g into a page of a collection sized to the
// logical screen of g.
func FromGIF(g *gif.GIF, colors int, dither bool) (*poster.Collection, error) {
	c := &poster.Collection{
		Width:  uint32(g.Config.Width),
		Height: uint32(g.Config.Height),
		Pages:  make([]poster.Image, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		m, err := FromImage(frame, colors, dither)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		c.Pages = append(c.Pages, *m)
	}

	return c, nil
}
