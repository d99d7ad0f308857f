package poster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/poster/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Label "A", empty tooltip, 2x1, one color, two pixels
var smallImage = []byte{
	0x01, 0x00, 'A',
	0x00, 0x00,
	0x02, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00,
	0x01,
	0x00, 0x00, 0xff, 0x00,
	0x02, 0x00, 0x00, 0x00,
	0x00, 0x00,
}

func TestEncode(t *testing.T) {
	m := &Image{
		Label:   Present("A"),
		Tooltip: Absent,
		Width:   2,
		Height:  1,
		Palette: Palette{0x00ff0000},
		Pixels:  Pixels{0, 0},
	}

	b, err := Encode(m)
	require.NoError(t, err)
	assert.Equal(t, smallImage, b)

	// Absent and empty encode identically
	m.Tooltip = Present("")
	b, err = Encode(m)
	require.NoError(t, err)
	assert.Equal(t, smallImage, b)
}

func TestDecode(t *testing.T) {
	m, warnings, err := Decode(smallImage)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, &Image{
		Label:   Present("A"),
		Tooltip: Present(""),
		Width:   2,
		Height:  1,
		Palette: Palette{0x00ff0000},
		Pixels:  Pixels{0, 0},
	}, m)
	assert.True(t, m.Tooltip.IsPresent())
}

func TestRoundTrip(t *testing.T) {
	tables := map[string]*Image{
		"empty": {},
		"small": {
			Label:   Present("A"),
			Tooltip: Present("tip"),
			Width:   2,
			Height:  1,
			Palette: Palette{0x00ff0000},
			Pixels:  Pixels{0, 0},
		},
		"max text": {
			Label:   Present(strings.Repeat("L", MaxText)),
			Tooltip: Present(strings.Repeat("T", MaxText)),
			Palette: Palette{},
			Pixels:  Pixels{},
		},
		"max palette": {
			Label:   Present(""),
			Tooltip: Present(""),
			Width:   16,
			Height:  16,
			Palette: make(Palette, MaxPalette),
			Pixels:  bytes.Repeat([]byte{0xfe}, 256),
		},
		"high bytes": {
			Label:   Present("\u0080\u00ff"),
			Tooltip: Present("café"),
			Palette: Palette{0xffffffff, 0x12345678},
			Pixels:  Pixels{1, 0, 1},
			Width:   3,
			Height:  1,
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			b, err := Encode(table)
			require.NoError(t, err)

			m, warnings, err := Decode(b)
			require.NoError(t, err)
			assert.Empty(t, warnings)

			assert.True(t, m.Label.IsPresent())
			assert.True(t, m.Tooltip.IsPresent())
			assert.Equal(t, table.Label.String(), m.Label.String())
			assert.Equal(t, table.Tooltip.String(), m.Tooltip.String())
			assert.Equal(t, table.Width, m.Width)
			assert.Equal(t, table.Height, m.Height)
			assert.Equal(t, len(table.Palette), len(m.Palette))
			if len(table.Palette) > 0 {
				assert.Equal(t, table.Palette, m.Palette)
			}
			assert.Equal(t, len(table.Pixels), len(m.Pixels))
			if len(table.Pixels) > 0 {
				assert.Equal(t, table.Pixels, m.Pixels)
			}
		})
	}
}

func TestDecodeShort(t *testing.T) {
	for n := 0; n < minImageSize; n++ {
		_, _, err := Decode(make([]byte, n))
		assert.True(t, errors.Is(err, wire.ErrTruncated), "length %d", n)
	}

	m, _, err := Decode(make([]byte, minImageSize))
	require.NoError(t, err)
	assert.Equal(t, Present(""), m.Label)
	assert.Empty(t, m.Palette)
	assert.Empty(t, m.Pixels)
}

func TestDecodeTruncated(t *testing.T) {
	tables := map[string]struct {
		input []byte
		field string
	}{
		"label": {
			input: []byte{0x05, 0x00, 'a'},
			field: "label",
		},
		"tooltip length": {
			input: []byte{0x00, 0x00, 0x00},
			field: "tooltip length",
		},
		"palette entry": {
			input: []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0xff, 0xff, 0xff, 0xff, 0x00},
			field: "palette[1]",
		},
		"pixels": {
			input: []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0x00},
			field: "pixels",
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			m, warnings, err := Decode(table.input)
			assert.Nil(t, m)
			assert.Nil(t, warnings)

			var te *wire.TruncatedError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, table.field, te.Field)
		})
	}
}

func TestDecodeControlCharacters(t *testing.T) {
	b := append([]byte{0x03, 0x00, 0x41, 0x00, 0x42}, smallImage[3:]...)

	m, warnings, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, Present("AB"), m.Label)
	require.Len(t, warnings, 1)
	assert.Equal(t, "label", warnings[0].Field)
	assert.Equal(t, 3, warnings[0].Offset)

	// The rest of the record is read from the right place
	assert.Equal(t, uint32(2), m.Width)
	assert.Equal(t, Pixels{0, 0}, m.Pixels)
}

func TestDecodeLatin1JSON(t *testing.T) {
	b := append([]byte{0x04, 0x00, 'c', 'a', 'f', 0xe9}, smallImage[3:]...)

	m, warnings, err := Decode(b)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Present("café"), m.Label)

	j, err := EncodeJSON(m)
	require.NoError(t, err)
	assert.Contains(t, string(j), `"label":"café"`)

	m, err = DecodeImageJSON(j)
	require.NoError(t, err)

	out, err := Encode(m)
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestEncodeUnrepresentable(t *testing.T) {
	_, err := Encode(&Image{Label: Present("5€")})
	assert.True(t, errors.Is(err, wire.ErrOutOfRange))

	var re *wire.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "label", re.Field)
}

func TestDecodeTrailing(t *testing.T) {
	m, warnings, err := Decode(append(append([]byte{}, smallImage...), 0xaa, 0xbb))
	require.NoError(t, err)
	assert.Equal(t, Pixels{0, 0}, m.Pixels)
	require.Len(t, warnings, 1)
	assert.Equal(t, "image", warnings[0].Field)
	assert.Equal(t, len(smallImage), warnings[0].Offset)
}

func TestEncodeOutOfRange(t *testing.T) {
	tables := map[string]struct {
		image *Image
		field string
	}{
		"label": {
			image: &Image{Label: Present(strings.Repeat("x", MaxText+1))},
			field: "label length",
		},
		"tooltip": {
			image: &Image{Tooltip: Present(strings.Repeat("x", MaxText+1))},
			field: "tooltip length",
		},
		"palette": {
			image: &Image{Palette: make(Palette, MaxPalette+1)},
			field: "palette count",
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			b, err := Encode(table.image)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, wire.ErrOutOfRange))

			var re *wire.RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, table.field, re.Field)
		})
	}
}

func TestEncodePaletteLimit(t *testing.T) {
	_, err := Encode(&Image{Palette: make(Palette, 255)})
	assert.NoError(t, err)

	_, err = Encode(&Image{Palette: make(Palette, 256)})
	assert.True(t, errors.Is(err, wire.ErrOutOfRange))
}

func TestImageBinaryMarshaler(t *testing.T) {
	var m Image
	require.NoError(t, m.UnmarshalBinary(smallImage))
	assert.Equal(t, uint32(2), m.Width)

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, smallImage, b)

	// A failed decode leaves the receiver alone
	assert.Error(t, m.UnmarshalBinary(smallImage[:10]))
	assert.Equal(t, uint32(2), m.Width)
}
