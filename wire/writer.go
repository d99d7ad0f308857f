package wire

import "encoding/binary"

// Writer appends fields to a growing buffer. The zero value is ready to use.
type Writer struct {
	b []byte
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.b)
}

// Bytes returns the written bytes. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.b
}

// Uint8 writes a single byte.
func (w *Writer) Uint8(v uint8) {
	w.b = append(w.b, v)
}

// Uint16 writes a little-endian 16-bit value.
func (w *Writer) Uint16(v uint16) {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
}

// Uint32 writes a little-endian 32-bit value.
func (w *Writer) Uint32(v uint32) {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
}

// Write appends b verbatim.
func (w *Writer) Write(b []byte) {
	w.b = append(w.b, b...)
}

// Length writes n as an unsigned prefix of width bytes, failing with a
// RangeError if n does not fit.
func (w *Writer) Length(field string, n, width int) error {
	max := maxForWidth(width)
	if n < 0 || uint64(n) > max {
		return &RangeError{
			Field: field,
			Value: uint64(n),
			Max:   max,
		}
	}
	switch width {
	case Width8:
		w.Uint8(uint8(n))
	case Width16:
		w.Uint16(uint16(n))
	case Width32:
		w.Uint32(uint32(n))
	}
	return nil
}

// Text writes s as ISO-8859-1, one byte per character, preceded by its length
// as a prefix of width bytes. Nothing is filtered. A character above U+00FF,
// or invalid UTF-8, fails with a RangeError.
func (w *Writer) Text(field, s string, width int) error {
	for _, c := range s {
		if c > maxLatin1 {
			return &RangeError{
				Field: field,
				Value: uint64(c),
				Max:   maxLatin1,
			}
		}
	}

	b, err := latin1.NewEncoder().String(s)
	if err != nil {
		return err
	}

	if err := w.Length(field+" length", len(b), width); err != nil {
		return err
	}
	w.b = append(w.b, b...)
	return nil
}

// Block writes the length of b as a prefix of width bytes followed by b.
func (w *Writer) Block(field string, b []byte, width int) error {
	if err := w.Length(field+" length", len(b), width); err != nil {
		return err
	}
	w.b = append(w.b, b...)
	return nil
}
