package toml

import (
	"bytes"
	"sort"

	bstoml "github.com/BurntSushi/toml"
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// DecodeStd parses full TOML with github.com/BurntSushi/toml. Key order of the
// document is restored from the decoder metadata.
func DecodeStd(data []byte) (*value.Map, error) {
	raw := make(map[string]any)
	md, err := bstoml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(err, "toml")
	}
	return orderedTable(raw, nil, md.Keys())
}

// EncodeStd renders m as TOML with github.com/BurntSushi/toml. The library
// sorts keys, and null values are skipped.
func EncodeStd(m *value.Map) ([]byte, error) {
	var buf bytes.Buffer
	enc := bstoml.NewEncoder(&buf)
	if err := enc.Encode(value.ToUntyped(m)); err != nil {
		return nil, errors.Wrap(err, "toml")
	}
	return buf.Bytes(), nil
}

func orderedTable(raw map[string]any, prefix bstoml.Key, keys []bstoml.Key) (*value.Map, error) {
	out := value.NewMap()
	for _, name := range childOrder(raw, prefix, keys) {
		path := append(prefix[:len(prefix):len(prefix)], name)
		n, err := orderedNode(raw[name], path, keys)
		if err != nil {
			return nil, errors.Wrapf(err, "toml: key %q", path.String())
		}
		out.Set(name, n)
	}
	return out, nil
}

func orderedNode(x any, path bstoml.Key, keys []bstoml.Key) (value.Node, error) {
	switch v := x.(type) {
	case map[string]any:
		return orderedTable(v, path, keys)
	case []map[string]any:
		s := value.NewSeq()
		for _, e := range v {
			t, err := orderedTable(e, path, keys)
			if err != nil {
				return nil, err
			}
			s.Append(t)
		}
		return s, nil
	case []any:
		s := value.NewSeq()
		for _, e := range v {
			n, err := orderedNode(e, path, keys)
			if err != nil {
				return nil, err
			}
			s.Append(n)
		}
		return s, nil
	default:
		return value.FromUntyped(v)
	}
}

// childOrder lists the keys of raw in document order. Keys the metadata does
// not mention are appended sorted.
func childOrder(raw map[string]any, prefix bstoml.Key, keys []bstoml.Key) []string {
	seen := make(map[string]bool, len(raw))
	order := make([]string, 0, len(raw))
	for _, k := range keys {
		if len(k) != len(prefix)+1 || !hasPrefix(k, prefix) {
			continue
		}
		name := k[len(prefix)]
		if _, ok := raw[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}

	var rest []string
	for name := range raw {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func hasPrefix(k, prefix bstoml.Key) bool {
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}
