package wire

import (
	"encoding/binary"
	"fmt"
)

// Reader decodes fields from a byte buffer with an explicit cursor. A Reader
// never reads past the end of its buffer; any such attempt returns a
// TruncatedError and leaves the cursor where it was.
type Reader struct {
	b        []byte
	off      int
	base     int
	prefix   string
	warnings *[]Warning
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{
		b:        b,
		warnings: new([]Warning),
	}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.b) - r.off
}

// Offset returns the absolute offset of the cursor. For a Reader returned by
// Sub this is relative to the outermost buffer.
func (r *Reader) Offset() int {
	return r.base + r.off
}

// Warnings returns every warning recorded so far, including those recorded by
// sub-readers.
func (r *Reader) Warnings() []Warning {
	return *r.warnings
}

// Warn records a warning against field at the current offset.
func (r *Reader) Warn(field, format string, args ...interface{}) {
	r.warn(field, r.Offset(), format, args...)
}

func (r *Reader) warn(field string, offset int, format string, args ...interface{}) {
	*r.warnings = append(*r.warnings, Warning{
		Field:   r.prefix + field,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Reader) next(field string, n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, &TruncatedError{
			Field:  r.prefix + field,
			Offset: r.Offset(),
			Need:   n,
			Have:   r.Len(),
		}
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8(field string) (uint8, error) {
	b, err := r.next(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian 16-bit value.
func (r *Reader) Uint16(field string) (uint16, error) {
	b, err := r.next(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian 32-bit value.
func (r *Reader) Uint32(field string) (uint32, error) {
	b, err := r.next(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) length(field string, width int) (int, error) {
	switch width {
	case Width8:
		n, err := r.Uint8(field)
		return int(n), err
	case Width16:
		n, err := r.Uint16(field)
		return int(n), err
	case Width32:
		n, err := r.Uint32(field)
		if err != nil {
			return 0, err
		}
		if uint64(n) > uint64(maxInt) {
			return 0, &TruncatedError{
				Field:  r.prefix + field,
				Offset: r.Offset(),
				Need:   maxInt,
				Have:   r.Len(),
			}
		}
		return int(n), nil
	}
	panic("wire: invalid length prefix width")
}

const maxInt = int(^uint(0) >> 1)

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(field string, n int) ([]byte, error) {
	b, err := r.next(field, n)
	if err != nil {
		return nil, err
	}
	return append(make([]byte, 0, n), b...), nil
}

// Block reads a length prefixed run of bytes where the prefix is width bytes
// wide and returns a copy of them.
func (r *Reader) Block(field string, width int) ([]byte, error) {
	start := r.off

	n, err := r.length(field+" length", width)
	if err != nil {
		return nil, err
	}

	b, err := r.Bytes(field, n)
	if err != nil {
		r.off = start
		return nil, err
	}
	return b, nil
}

// Text reads a length prefixed string where the prefix is width bytes wide.
// Each byte is one ISO-8859-1 character and is returned as UTF-8; bytes in
// the ASCII control range are dropped and reported as warnings but the cursor
// always advances by the declared length.
func (r *Reader) Text(field string, width int) (string, error) {
	start := r.off

	n, err := r.length(field+" length", width)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	b, err := r.next(field, n)
	if err != nil {
		r.off = start
		return "", err
	}

	kept := make([]byte, 0, n)
	for i, c := range b {
		if isControl(c) {
			r.warn(field, r.Offset()-n+i, "dropped control character 0x%02x", c)
			continue
		}
		kept = append(kept, c)
	}

	// Every byte maps to a code point so this cannot fail
	s, err := latin1.NewDecoder().Bytes(kept)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// Sub returns a Reader over the next n bytes and advances past them. The
// n bytes are preceded by a length prefix of width bytes. Offsets reported by
// the sub-reader are absolute, its field names are prefixed with prefix and
// its warnings are shared with r.
func (r *Reader) Sub(field, prefix string, width int) (*Reader, error) {
	start := r.off

	n, err := r.length(field+" length", width)
	if err != nil {
		return nil, err
	}

	base := r.Offset()
	b, err := r.next(field, n)
	if err != nil {
		r.off = start
		return nil, err
	}

	return &Reader{
		b:        b,
		base:     base,
		prefix:   r.prefix + prefix,
		warnings: r.warnings,
	}, nil
}
