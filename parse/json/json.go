// Package json reads and writes JSON objects as ordered value maps using
// github.com/goccy/go-json.
package json

import (
	"bytes"

	gojson "github.com/goccy/go-json"
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// Encode renders m as a JSON object in key insertion order. A non-empty
// indent pretty-prints the output.
func Encode(m *value.Map, indent string) ([]byte, error) {
	out, err := gojson.MarshalWithOption(m, gojson.DisableHTMLEscape())
	if err != nil {
		return nil, errors.Wrap(err, "json: encode")
	}
	if indent == "" {
		return out, nil
	}
	var buf bytes.Buffer
	if err := gojson.Indent(&buf, out, "", indent); err != nil {
		return nil, errors.Wrap(err, "json: indent")
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON object. Key order is kept; a top-level null yields an
// empty map.
func Decode(data []byte) (*value.Map, error) {
	m := value.NewMap()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return m, nil
	}
	if err := gojson.Unmarshal(data, m); err != nil {
		return nil, errors.Wrap(err, "json: decode")
	}
	return m, nil
}
