package poster

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeImageJSON decodes an image from its structured form.
func DecodeImageJSON(b []byte) (*Image, error) {
	m := new(Image)
	if err := json.Unmarshal(b, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeCollectionJSON decodes a collection from its structured form.
func DecodeCollectionJSON(b []byte) (*Collection, error) {
	c := new(Collection)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeJSON encodes an *Image or *Collection into its structured form.
func EncodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
