package poster

import (
	"fmt"

	"github.com/bodgit/poster/wire"
)

// title, width, height
const headerSize = 2 + 4 + 4

// Collection is an ordered set of images sharing a nominal title and size.
// The size is not required to match any of the pages. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Collection struct {
	Width  uint32  `json:"width"`
	Height uint32  `json:"height"`
	Title  Text    `json:"title"`
	Pages  []Image `json:"pages"`
}

// MarshalJSON encodes a nil page list as an empty array.
func (c Collection) MarshalJSON() ([]byte, error) {
	type plain Collection
	v := plain(c)
	if v.Pages == nil {
		v.Pages = []Image{}
	}
	return json.Marshal(v)
}

// DecodeCollection decodes a collection occupying all of b. Pages follow the
// header, each prefixed by its length, until fewer than four bytes remain;
// any remainder is ignored with a warning. On error no collection is
// returned.
func DecodeCollection(b []byte) (*Collection, []Warning, error) {
	r := wire.NewReader(b)

	title, err := r.Text("title", wire.Width16)
	if err != nil {
		return nil, nil, err
	}

	c := &Collection{
		Title: Present(title),
		Pages: []Image{},
	}

	if c.Width, err = r.Uint32("width"); err != nil {
		return nil, nil, err
	}
	if c.Height, err = r.Uint32("height"); err != nil {
		return nil, nil, err
	}

	for i := 0; r.Len() >= 4; i++ {
		prefix := fmt.Sprintf("pages[%d].", i)

		pr, err := r.Sub("page", prefix, wire.Width32)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", i, err)
		}

		m, err := decodeImage(pr)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", i, err)
		}
		trailing(pr, "page")

		c.Pages = append(c.Pages, *m)
	}

	// TODO Reject the remainder once it is known whether writers pad
	trailing(r, "pages")

	return c, r.Warnings(), nil
}

// EncodeCollection encodes c. Absent title is written as zero length.
func EncodeCollection(c *Collection) ([]byte, error) {
	w := new(wire.Writer)

	if err := w.Text("title", c.Title.String(), wire.Width16); err != nil {
		return nil, err
	}
	w.Uint32(c.Width)
	w.Uint32(c.Height)

	for i := range c.Pages {
		page := new(wire.Writer)
		if err := encodeImage(page, &c.Pages[i]); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if err := w.Block("page", page.Bytes(), wire.Width32); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
	}

	return w.Bytes(), nil
}

// MarshalBinary encodes the collection into binary form and returns the
// result
func (c *Collection) MarshalBinary() ([]byte, error) {
	return EncodeCollection(c)
}

// UnmarshalBinary decodes the collection from binary form. Warnings are
// discarded, use DecodeCollection to receive them.
func (c *Collection) UnmarshalBinary(b []byte) error {
	dup, _, err := DecodeCollection(b)
	if err != nil {
		return err
	}
	*c = *dup
	return nil
}
