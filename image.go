package poster

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bodgit/poster/wire"
)

const (
	// MaxPalette is the largest palette the binary format can hold
	MaxPalette = math.MaxUint8
	// MaxText is the longest label, tooltip or title in bytes
	MaxText = math.MaxUint16

	// label, tooltip, width, height, palette count, pixel count
	minImageSize = 2 + 2 + 4 + 4 + 1 + 4
)

// Warning is a non-fatal decode diagnostic, such as a dropped control
// character.
type Warning = wire.Warning

// Palette is an ordered list of colors, a pixel value is an index into it.
type Palette []uint32

// Pixels holds one palette index per pixel, row by row.
type Pixels []byte

// MarshalJSON encodes pixels as an array of numbers rather than base64.
func (p Pixels) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(p)*4+2)
	b = append(b, '[')
	for i, v := range p {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendUint(b, uint64(v), 10)
	}
	return append(b, ']'), nil
}

// UnmarshalJSON decodes an array of numbers each of which must fit in a
// byte.
func (p *Pixels) UnmarshalJSON(b []byte) error {
	var v []uint16
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*p = nil
		return nil
	}
	px := make(Pixels, len(v))
	for i, x := range v {
		if x > math.MaxUint8 {
			return &ValidationError{
				Field: fmt.Sprintf("pixels[%d]", i),
				Msg:   fmt.Sprintf("value %d does not fit in a byte", x),
			}
		}
		px[i] = byte(x)
	}
	*p = px
	return nil
}

// Image is a single palette indexed raster. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Image struct {
	Label   Text    `json:"label"`
	Tooltip Text    `json:"tooltip"`
	Palette Palette `json:"palette"`
	Pixels  Pixels  `json:"pixels"`
	Width   uint32  `json:"width"`
	Height  uint32  `json:"height"`
}

// MarshalJSON encodes a nil palette or pixels as an empty array.
func (m Image) MarshalJSON() ([]byte, error) {
	type plain Image
	v := plain(m)
	if v.Palette == nil {
		v.Palette = Palette{}
	}
	if v.Pixels == nil {
		v.Pixels = Pixels{}
	}
	return json.Marshal(v)
}

func decodeImage(r *wire.Reader) (*Image, error) {
	label, err := r.Text("label", wire.Width16)
	if err != nil {
		return nil, err
	}

	tooltip, err := r.Text("tooltip", wire.Width16)
	if err != nil {
		return nil, err
	}

	m := &Image{
		Label:   Present(label),
		Tooltip: Present(tooltip),
	}

	if m.Width, err = r.Uint32("width"); err != nil {
		return nil, err
	}
	if m.Height, err = r.Uint32("height"); err != nil {
		return nil, err
	}

	colors, err := r.Uint8("palette count")
	if err != nil {
		return nil, err
	}
	m.Palette = make(Palette, colors)
	for i := range m.Palette {
		if m.Palette[i], err = r.Uint32(fmt.Sprintf("palette[%d]", i)); err != nil {
			return nil, err
		}
	}

	b, err := r.Block("pixels", wire.Width32)
	if err != nil {
		return nil, err
	}
	m.Pixels = b

	return m, nil
}

func trailing(r *wire.Reader, field string) {
	if n := r.Len(); n > 0 {
		r.Warn(field, "ignored %d trailing bytes", n)
	}
}

func encodeImage(w *wire.Writer, m *Image) error {
	if err := w.Text("label", m.Label.String(), wire.Width16); err != nil {
		return err
	}
	if err := w.Text("tooltip", m.Tooltip.String(), wire.Width16); err != nil {
		return err
	}

	w.Uint32(m.Width)
	w.Uint32(m.Height)

	if err := w.Length("palette count", len(m.Palette), wire.Width8); err != nil {
		return err
	}
	for _, c := range m.Palette {
		w.Uint32(c)
	}

	return w.Block("pixels", m.Pixels, wire.Width32)
}

// Decode decodes a single image record occupying all of b. Any warnings
// raised while decoding are returned alongside the image. On error no image
// is returned.
func Decode(b []byte) (*Image, []Warning, error) {
	r := wire.NewReader(b)
	m, err := decodeImage(r)
	if err != nil {
		return nil, nil, err
	}
	trailing(r, "image")
	return m, r.Warnings(), nil
}

// Encode encodes m as a single image record. Absent label or tooltip is
// written as zero length.
func Encode(m *Image) ([]byte, error) {
	w := new(wire.Writer)
	if err := encodeImage(w, m); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// MarshalBinary encodes the image into binary form and returns the result
func (m *Image) MarshalBinary() ([]byte, error) {
	return Encode(m)
}

// UnmarshalBinary decodes the image from binary form. Warnings are
// discarded, use Decode to receive them.
func (m *Image) UnmarshalBinary(b []byte) error {
	dup, _, err := Decode(b)
	if err != nil {
		return err
	}
	*m = *dup
	return nil
}
