package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is matched by any TruncatedError using errors.Is
	ErrTruncated = errors.New("wire: truncated input")
	// ErrOutOfRange is matched by any RangeError using errors.Is
	ErrOutOfRange = errors.New("wire: value out of range")
)

// TruncatedError is returned when the buffer is shorter than a field
// requires.
type TruncatedError struct {
	Field  string
	Offset int // absolute offset the field starts at
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wire: truncated input: %s needs %d bytes at offset %d, %d available", e.Field, e.Need, e.Offset, e.Have)
}

// Is reports whether target is ErrTruncated.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// RangeError is returned when a value does not fit the fixed width field it
// is written to.
type RangeError struct {
	Field string
	Value uint64
	Max   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("wire: %s is %d, maximum is %d", e.Field, e.Value, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Warning is a non-fatal decode diagnostic.
type Warning struct {
	Field   string
	Offset  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at offset %d: %s", w.Field, w.Offset, w.Message)
}
