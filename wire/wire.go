/*
Package wire implements the fixed width field primitives shared by the image
and collection codecs.

All integers are little-endian. Text is written as an unsigned length prefix
of 1, 2 or 4 bytes followed by that many ISO-8859-1 bytes.
*/
package wire

import (
	"math"

	"golang.org/x/text/encoding/charmap"
)

var latin1 = charmap.ISO8859_1

// Highest code point Text can carry
const maxLatin1 = 0xff

// Length prefix widths accepted by Reader.Text, Writer.Text and
// Writer.Length.
const (
	Width8  = 1
	Width16 = 2
	Width32 = 4
)

func maxForWidth(width int) uint64 {
	switch width {
	case Width8:
		return math.MaxUint8
	case Width16:
		return math.MaxUint16
	case Width32:
		return math.MaxUint32
	}
	panic("wire: invalid length prefix width")
}

// ASCII control range, 0x00-0x1f and 0x7f
func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}
