package poster

import (
	"fmt"
	"math"
)

// ValidationError describes the first inconsistency found between the
// declared size, the palette and the pixels of an image.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("poster: invalid %s: %s", e.Field, e.Msg)
}

// Validate checks that the number of pixels matches the declared size and
// that every pixel is a valid palette index. Neither is checked by the
// decoder.
func (m *Image) Validate() error {
	return m.validate("")
}

func (m *Image) validate(prefix string) error {
	if len(m.Palette) > MaxPalette {
		return &ValidationError{
			Field: prefix + "palette",
			Msg:   fmt.Sprintf("%d colors, maximum is %d", len(m.Palette), MaxPalette),
		}
	}

	area := uint64(m.Width) * uint64(m.Height)
	if area > math.MaxUint32 || uint64(len(m.Pixels)) != area {
		return &ValidationError{
			Field: prefix + "pixels",
			Msg:   fmt.Sprintf("%d pixels for a %dx%d image", len(m.Pixels), m.Width, m.Height),
		}
	}

	for i, p := range m.Pixels {
		if int(p) >= len(m.Palette) {
			return &ValidationError{
				Field: fmt.Sprintf("%spixels[%d]", prefix, i),
				Msg:   fmt.Sprintf("index %d outside palette of %d colors", p, len(m.Palette)),
			}
		}
	}

	return nil
}

// Validate checks every page as Image.Validate does. The collection size is
// nominal and is not compared with the pages.
func (c *Collection) Validate() error {
	for i := range c.Pages {
		if err := c.Pages[i].validate(fmt.Sprintf("pages[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}
