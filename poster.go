/*
Package poster is a library for converting palette indexed 2D images, and
collections of them, between a compact binary form and a structured JSON form.

A single image is written as:

	[u16 label length][label][u16 tooltip length][tooltip]
	[u32 width][u32 height]
	[u8 palette count][palette count × u32]
	[u32 pixel count][pixel count bytes]

A collection is a header followed by length framed single image records:

	[u16 title length][title][u32 width][u32 height]
	{[u32 page length][page length bytes]}*

All integers are little-endian. Text is ISO-8859-1, one byte per character;
ASCII control characters are dropped on decode and characters above U+00FF
cannot be encoded. The binary form cannot tell absent text from
empty text so absent text always decodes as present and empty.
*/
package poster

import (
	"errors"
	"fmt"
	"log"
)

// ErrStrict is returned in strict mode when decoding raised warnings or the
// decoded value is inconsistent.
var ErrStrict = errors.New("poster: rejected in strict mode")

// Poster converts files, logging any decode warnings.
type Poster struct {
	logger *log.Logger
	strict bool
}

// New returns a Poster logging to logger. In strict mode any decode warning
// or validation failure is an error.
func New(logger *log.Logger, strict bool) *Poster {
	return &Poster{
		logger: logger,
		strict: strict,
	}
}

func (p *Poster) report(name string, warnings []Warning) error {
	for _, w := range warnings {
		p.logger.Printf("%s: warning: %s\n", name, w)
	}
	if p.strict && len(warnings) > 0 {
		return fmt.Errorf("%w: %s: %d warnings", ErrStrict, name, len(warnings))
	}
	return nil
}

func (p *Poster) check(name string, v Value) error {
	if !p.strict {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStrict, name, err)
	}
	return nil
}
