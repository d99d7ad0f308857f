package raster

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/bodgit/poster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, Color(0xff123456))
	assert.Equal(t, uint32(0x00123456), Value(Color(0xff123456)))
	assert.Equal(t, uint32(0x00ff0000), Value(color.RGBA{R: 0xff, A: 0xff}))
}

func TestRender(t *testing.T) {
	m := &poster.Image{
		Width:   2,
		Height:  1,
		Palette: poster.Palette{0x00ff0000, 0x000000ff},
		Pixels:  poster.Pixels{1, 0},
	}

	pm, err := Render(m)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), pm.Bounds())
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, pm.At(0, 0))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, pm.At(1, 0))

	m.Pixels = poster.Pixels{2, 0}
	_, err = Render(m)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	pm, err := Render(&poster.Image{
		Width:   2,
		Height:  1,
		Palette: poster.Palette{0x00ff0000, 0x000000ff},
		Pixels:  poster.Pixels{0, 1},
	})
	require.NoError(t, err)

	assert.Same(t, pm, Scale(pm, 1))

	scaled := Scale(pm, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), scaled.Bounds())
	assert.Equal(t, uint8(0), scaled.ColorIndexAt(2, 2))
	assert.Equal(t, uint8(1), scaled.ColorIndexAt(3, 0))
}

func TestFromImagePaletted(t *testing.T) {
	src := image.NewPaletted(image.Rect(1, 1, 3, 2), color.Palette{
		color.RGBA{A: 0xff},
		color.RGBA{G: 0xff, A: 0xff},
	})
	src.SetColorIndex(2, 1, 1)

	m, err := FromImage(src, 255, false)
	require.NoError(t, err)
	assert.Equal(t, &poster.Image{
		Width:   2,
		Height:  1,
		Palette: poster.Palette{0x00000000, 0x0000ff00},
		Pixels:  poster.Pixels{0, 1},
	}, m)
}

func TestFromImageQuantized(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 64), G: uint8(y * 64), A: 0xff})
		}
	}

	for _, dither := range []bool{false, true} {
		m, err := FromImage(src, 4, dither)
		require.NoError(t, err)
		assert.Equal(t, uint32(4), m.Width)
		assert.LessOrEqual(t, len(m.Palette), 4)
		assert.Len(t, m.Pixels, 16)
		assert.NoError(t, m.Validate())
	}

	_, err := FromImage(src, 0, false)
	assert.Error(t, err)
}

func TestCollection(t *testing.T) {
	c := &poster.Collection{
		Width:  1,
		Height: 1,
		Pages: []poster.Image{
			{Width: 1, Height: 1, Palette: poster.Palette{0}, Pixels: poster.Pixels{0}},
			{Width: 2, Height: 3, Palette: poster.Palette{0, 0x00ffffff}, Pixels: poster.Pixels{0, 1, 1, 0, 0, 1}},
		},
	}

	g, err := RenderCollection(c, 10)
	require.NoError(t, err)
	assert.Len(t, g.Image, 2)
	assert.Equal(t, []int{10, 10}, g.Delay)
	assert.Equal(t, 2, g.Config.Width)
	assert.Equal(t, 3, g.Config.Height)

	got, err := FromGIF(g, 255, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), got.Width)
	assert.Equal(t, uint32(3), got.Height)
	require.Len(t, got.Pages, 2)
	assert.Equal(t, c.Pages[1].Pixels, got.Pages[1].Pixels)
	assert.Equal(t, c.Pages[1].Palette, got.Pages[1].Palette)

	_, err = RenderCollection(&poster.Collection{}, 10)
	assert.Error(t, err)

	_, err = FromGIF(&gif.GIF{}, 255, false)
	assert.NoError(t, err)
}
