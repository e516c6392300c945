package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// =========================
// Safe Access Helpers
// =========================

func Get(root *Map, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		if len(p) == 0 {
			continue
		}
		m, ok := cur.(*Map)
		if !ok {
			return nil, false
		}
		cur, ok = m.Get(p)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func GetUntyped(root *Map, path ...string) (any, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(n), true
}

// ToUntyped converts a tree into plain Go values: maps become
// map[string]any, sequences []any and scalars their underlying value.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Value:
		return v.V
	case *Seq:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Map:
		m := make(map[string]any, v.Len())
		for k, child := range v.All() {
			m[k] = ToUntyped(child)
		}
		return m
	default:
		return nil
	}
}

// FromUntyped converts plain Go values into a tree. Keys of Go maps are sorted
// since their iteration order carries no meaning.
func FromUntyped(x any) (Node, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Node:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, errors.Errorf("value: %d overflows int64", v)
		}
		return Int(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, errors.Errorf("value: %d overflows int64", v)
		}
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case time.Time:
		return String(v.Format(time.RFC3339Nano)), nil
	case []any:
		s := NewSeq()
		for i, e := range v {
			n, err := FromUntyped(e)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			s.Append(n)
		}
		return s, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			n, err := FromUntyped(v[k])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			m.Set(k, n)
		}
		return m, nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return FromUntyped(out)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return FromUntyped(out)
	}
	return nil, errors.Wrapf(ErrUnsupportedValueKind, "value: cannot convert %T", x)
}

// Truthy reports whether n counts as present. Null, "", 0, 0.0, false and
// empty sequences or maps are falsy.
func Truthy(n Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case *Value:
		switch x := v.V.(type) {
		case nil:
			return false
		case string:
			return x != ""
		case int64:
			return x != 0
		case float64:
			return x != 0
		case bool:
			return x
		default:
			return true
		}
	case *Seq:
		return len(v.Elems) > 0
	case *Map:
		return v.Len() > 0
	default:
		return true
	}
}

// Text returns the default textual form of a scalar. Floats always carry a
// decimal point or an exponent so they read back as floats.
func Text(n Node) string {
	v, ok := n.(*Value)
	if !ok {
		return Format(n)
	}
	switch x := v.V.(type) {
	case nil:
		return "null"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}
