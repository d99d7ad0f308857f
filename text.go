package poster

import "bytes"

// Text is an optional string. The zero value is absent, which the binary
// format cannot express: absent text is written as zero length and always
// decodes as present.
type Text struct {
	s     string
	valid bool
}

// Absent is the absent Text.
var Absent = Text{}

// Present returns a Text holding s.
func Present(s string) Text {
	return Text{s: s, valid: true}
}

// Get returns the string and whether it is present.
func (t Text) Get() (string, bool) {
	return t.s, t.valid
}

// IsPresent reports whether t holds a value.
func (t Text) IsPresent() bool {
	return t.valid
}

// String returns the string, or "" if absent.
func (t Text) String() string {
	return t.s
}

var null = []byte("null")

// MarshalJSON encodes absent text as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return null, nil
	}
	return json.Marshal(t.s)
}

// UnmarshalJSON decodes null as absent text.
func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), null) {
		*t = Absent
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = Present(s)
	return nil
}
