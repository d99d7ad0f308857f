package poster

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// Value is either an *Image or a *Collection.
type Value interface {
	Validate() error
}

func decode(b []byte, f Format, k Kind) (Value, []Warning, error) {
	switch {
	case f == FormatBinary && k == KindImage:
		return Decode(b)
	case f == FormatBinary && k == KindCollection:
		return DecodeCollection(b)
	case f == FormatJSON && k == KindImage:
		m, err := DecodeImageJSON(b)
		return m, nil, err
	case f == FormatJSON && k == KindCollection:
		c, err := DecodeCollectionJSON(b)
		return c, nil, err
	}
	return nil, nil, fmt.Errorf("poster: cannot decode %s %s", f, k)
}

func encode(v Value, f Format) ([]byte, error) {
	if f == FormatJSON {
		return EncodeJSON(v)
	}
	switch v := v.(type) {
	case *Image:
		return Encode(v)
	case *Collection:
		return EncodeCollection(v)
	}
	return nil, fmt.Errorf("poster: cannot encode %T", v)
}

// Load decodes a file, picking the format and kind from its extension.
// Warnings are logged; in strict mode they are an error, as is an
// inconsistent image.
func (p *Poster) Load(file string) (Value, Kind, error) {
	f, k, err := ParseExtension(file)
	if err != nil {
		return nil, 0, err
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, 0, err
	}

	v, warnings, err := decode(b, f, k)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", file, err)
	}
	if err := p.report(file, warnings); err != nil {
		return nil, 0, err
	}
	if err := p.check(file, v); err != nil {
		return nil, 0, err
	}

	return v, k, nil
}

// writeFile replaces file with b by way of a temporary file in the same
// directory, so file is never left truncated.
func writeFile(file string, b []byte) (err error) {
	tmp, err := ioutil.TempFile(filepath.Dir(file), ".poster-")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

// Save encodes v in format f and writes it to base with its extension
// replaced by the one matching the format and kind. The name of the written
// file is returned.
func Save(v Value, base string, f Format) (string, error) {
	k := KindImage
	if _, ok := v.(*Collection); ok {
		k = KindCollection
	}

	b, err := encode(v, f)
	if err != nil {
		return "", err
	}

	file := strings.TrimSuffix(base, filepath.Ext(base)) + Extension(f, k)
	return file, writeFile(file, b)
}

func (p *Poster) transcode(b []byte, from, to Format, k Kind) ([]byte, error) {
	v, warnings, err := decode(b, from, k)
	if err != nil {
		return nil, err
	}
	if err := p.report(k.String(), warnings); err != nil {
		return nil, err
	}
	if err := p.check(k.String(), v); err != nil {
		return nil, err
	}
	return encode(v, to)
}

// Transcode reads all of r, decodes it as the given format and kind, and
// writes it to w in the format to.
func (p *Poster) Transcode(r io.Reader, w io.Writer, from, to Format, k Kind) error {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	out, err := p.transcode(b, from, to, k)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// Convert converts the file in to the format to and writes it next to out,
// replacing the extension of out with the one matching the format and kind.
// The input is converted in full before anything is written so out may name
// the input itself. The name of the written file is returned.
func (p *Poster) Convert(in, out string, to Format) (string, error) {
	from, k, err := ParseExtension(in)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(in)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", errors.New("input can't be a directory")
	}

	out = strings.TrimSuffix(out, filepath.Ext(out)) + Extension(to, k)
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return "", errors.New("output can't be a directory")
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		return "", fmt.Errorf("output parent directory: %w", err)
	}

	b, err := ioutil.ReadFile(in)
	if err != nil {
		return "", err
	}

	p.logger.Printf("Converting \"%s\" (%s) to \"%s\" (%s)\n", in, from, out, to)

	b, err = p.transcode(b, from, to, k)
	if err != nil {
		return "", fmt.Errorf("%s: %w", in, err)
	}

	return out, writeFile(out, b)
}
