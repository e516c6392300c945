package toml

import (
	"strings"

	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// Encode renders m as TOML-like text. Top-level keys are bare, keys of nested
// maps are quoted and rendered inline:
//
//	a = { "b" = "c" }
//
// Null values have no rendering and yield value.ErrUnsupportedValueKind;
// mappers are expected to omit them.
func Encode(m *value.Map) ([]byte, error) {
	var sb strings.Builder
	for key, n := range m.All() {
		s, err := renderValue(n)
		if err != nil {
			return nil, errors.Wrapf(err, "toml: key %q", key)
		}
		sb.WriteString(key)
		sb.WriteString(" = ")
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func renderValue(n value.Node) (string, error) {
	switch v := n.(type) {
	case *value.Map:
		return renderInline(v)
	case *value.Seq:
		return renderSeq(v)
	case *value.Value:
		return renderScalar(v)
	default:
		return "", errors.Wrapf(value.ErrUnsupportedValueKind, "%T", n)
	}
}

func renderScalar(v *value.Value) (string, error) {
	switch v.Type {
	case value.Kinds.String:
		return `"` + v.V.(string) + `"`, nil
	case value.Kinds.Int, value.Kinds.Float, value.Kinds.Bool:
		return value.Text(v), nil
	default:
		return "", errors.Wrapf(value.ErrUnsupportedValueKind, "%s", v.Type)
	}
}

func renderSeq(s *value.Seq) (string, error) {
	if s.Len() == 0 {
		return "[]", nil
	}
	parts := make([]string, 0, s.Len())
	for i, e := range s.Elems {
		p, err := renderValue(e)
		if err != nil {
			return "", errors.Wrapf(err, "index %d", i)
		}
		parts = append(parts, p)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func renderInline(m *value.Map) (string, error) {
	if m.Len() == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, m.Len())
	for key, n := range m.All() {
		p, err := renderValue(n)
		if err != nil {
			return "", errors.Wrapf(err, "key %q", key)
		}
		parts = append(parts, `"`+key+`" = `+p)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}
