package poster

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the representation of an image or collection on disk.
type Format int

const (
	// FormatBinary is the compact binary wire form
	FormatBinary Format = iota
	// FormatJSON is the structured form
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Kind distinguishes a single image from a collection.
type Kind int

const (
	// KindImage is a single image
	KindImage Kind = iota
	// KindCollection is a collection of images
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindCollection:
		return "collection"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type fileType struct {
	format Format
	kind   Kind
}

var extensions = map[string]fileType{
	".2db":  {FormatBinary, KindImage},
	".2dj":  {FormatJSON, KindImage},
	".2dba": {FormatBinary, KindCollection},
	".2dja": {FormatJSON, KindCollection},
}

var errUnknownExtension = errors.New("poster: unknown file extension")

// ParseExtension returns the format and kind implied by the extension of
// name.
func ParseExtension(name string) (Format, Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensions[ext]; ok {
		return t.format, t.kind, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", errUnknownExtension, ext)
}

// Extension returns the file extension, including the leading dot, for the
// given format and kind.
func Extension(f Format, k Kind) string {
	for ext, t := range extensions {
		if t.format == f && t.kind == k {
			return ext
		}
	}
	return ""
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "j":
		return FormatJSON, nil
	case "binary", "bin", "b":
		return FormatBinary, nil
	}
	return 0, fmt.Errorf("poster: invalid format %q, valid formats are json and binary", s)
}
