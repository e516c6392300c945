package value

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Format renders n in the canonical textual form: JSON with map keys in
// insertion order. Values JSON cannot carry (NaN, Inf) fall back to fmt.
func Format(n Node) string {
	var buf bytes.Buffer
	if err := appendJSON(&buf, n); err != nil {
		return fmt.Sprint(ToUntyped(n))
	}
	return buf.String()
}

// Parse reads the canonical textual form back into a Map. Key order is kept.
func Parse(text string) (*Map, error) {
	m := NewMap()
	if err := m.UnmarshalJSON([]byte(text)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Seq) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, n Node) error {
	switch v := n.(type) {
	case nil:
		buf.WriteString("null")
	case *Map:
		buf.WriteByte('{')
		i := 0
		for k, child := range v.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := appendScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendJSON(buf, child); err != nil {
				return errors.Wrapf(err, "key %q", k)
			}
		}
		buf.WriteByte('}')
	case *Seq:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		buf.WriteByte(']')
	case *Value:
		return appendScalar(buf, v.V)
	default:
		return errors.Wrapf(ErrUnsupportedValueKind, "json: %T", n)
	}
	return nil
}

func appendScalar(buf *bytes.Buffer, x any) error {
	if f, ok := x.(float64); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
		buf.WriteString(FormatFloat(f))
		return nil
	}
	b, err := json.MarshalWithOption(x, json.DisableHTMLEscape())
	if err != nil {
		return errors.Wrap(err, "json")
	}
	buf.Write(b)
	return nil
}

func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return errors.New("json: empty input")
		}
		return errors.Wrap(err, "json")
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Errorf("json: expected object, got %v", tok)
	}
	n, err := decodeNode(dec, tok)
	if err != nil {
		return err
	}
	*m = *n.(*Map)
	return nil
}

func decodeNode(dec *json.Decoder, tok json.Token) (Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for {
				kt, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(err, "json")
				}
				if d, ok := kt.(json.Delim); ok && d == '}' {
					return m, nil
				}
				key, ok := kt.(string)
				if !ok {
					return nil, errors.Errorf("json: expected object key, got %v", kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, errors.Wrapf(err, "json: key %q", key)
				}
				child, err := decodeNode(dec, vt)
				if err != nil {
					return nil, err
				}
				m.Set(key, child)
			}
		case '[':
			s := NewSeq()
			for {
				et, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(err, "json")
				}
				if d, ok := et.(json.Delim); ok && d == ']' {
					return s, nil
				}
				child, err := decodeNode(dec, et)
				if err != nil {
					return nil, err
				}
				s.Append(child)
			}
		default:
			return nil, errors.Errorf("json: unexpected %v", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return parseNumber(string(t))
	case float64:
		return Float(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, errors.Errorf("json: unexpected token %v", tok)
	}
}

func parseNumber(s string) (Node, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "json: number %q", s)
	}
	return Float(f), nil
}
