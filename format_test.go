package poster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtension(t *testing.T) {
	tables := []struct {
		name   string
		format Format
		kind   Kind
		err    bool
	}{
		{"a.2db", FormatBinary, KindImage, false},
		{"a.2dj", FormatJSON, KindImage, false},
		{"dir/a.2dba", FormatBinary, KindCollection, false},
		{"A.2DJA", FormatJSON, KindCollection, false},
		{"a.png", 0, 0, true},
		{"a", 0, 0, true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			f, k, err := ParseExtension(table.name)
			if table.err {
				assert.True(t, errors.Is(err, errUnknownExtension))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, table.format, f)
			assert.Equal(t, table.kind, k)
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".2db", Extension(FormatBinary, KindImage))
	assert.Equal(t, ".2dj", Extension(FormatJSON, KindImage))
	assert.Equal(t, ".2dba", Extension(FormatBinary, KindCollection))
	assert.Equal(t, ".2dja", Extension(FormatJSON, KindCollection))
	assert.Equal(t, "", Extension(Format(5), KindImage))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "JSON", "j"} {
		f, err := ParseFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, FormatJSON, f)
	}
	for _, s := range []string{"binary", "bin", "B"} {
		f, err := ParseFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, FormatBinary, f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "binary", FormatBinary.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "Format(9)", Format(9).String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "collection", KindCollection.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
