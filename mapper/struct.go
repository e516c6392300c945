package mapper

import (
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/dzjyyds666/serde/value"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// TagName is the struct tag read by Struct. The tag value is a field name
// optionally followed by ",omitempty"; "-" skips the field.
const TagName = "serde"

var timeType = reflect.TypeOf(time.Time{})

// Struct maps *T records by reflection over exported fields. Fields are
// written in declaration order, embedded structs without a tag are flattened.
// Reading goes through mapstructure with weak typing, so "10" fills an int
// field and an empty element placeholder fills the zero value.
type Struct[T any] struct {
	root   string
	strict bool
}

type StructOption func(*structOptions)

type structOptions struct {
	root   string
	strict bool
}

// Root nests every serialized record under a single element and expects the
// same element when reading.
func Root(name string) StructOption {
	return func(o *structOptions) {
		o.root = name
	}
}

// Strict makes MapDeserialize fail on keys that match no field.
func Strict() StructOption {
	return func(o *structOptions) {
		o.strict = true
	}
}

func NewStruct[T any](opts ...StructOption) *Struct[T] {
	o := &structOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return &Struct[T]{root: o.root, strict: o.strict}
}

func (s *Struct[T]) MapSerialize(record *T) (*value.Map, error) {
	if record == nil {
		return nil, errors.New("mapper: nil record")
	}
	rv := reflect.ValueOf(record).Elem()
	if rv.Kind() != reflect.Struct {
		return nil, errors.Errorf("mapper: %s is not a struct", rv.Type())
	}
	m := value.NewMap()
	if err := writeFields(m, rv); err != nil {
		return nil, err
	}
	if s.root != "" {
		return value.NewMap().Set(s.root, m), nil
	}
	return m, nil
}

func (s *Struct[T]) MapDeserialize(record *T, m *value.Map) (*T, error) {
	if record == nil {
		record = new(T)
	}
	if m == nil {
		return record, nil
	}
	src := m
	if s.root != "" {
		n, ok := m.Get(s.root)
		if !ok {
			return record, errors.Errorf("mapper: missing root element %q", s.root)
		}
		inner, isMap := n.(*value.Map)
		if !isMap {
			// The root held bare text, there are no fields to read.
			return record, nil
		}
		src = inner
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Squash:           true,
		ErrorUnused:      s.strict,
		Result:           record,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			placeholderHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return record, errors.Wrap(err, "mapper: build decoder")
	}
	if err := dec.Decode(value.ToUntyped(src)); err != nil {
		return record, errors.Wrap(err, "mapper: decode")
	}
	return record, nil
}

// placeholderHook turns an empty map, the value of an element without
// content, into the zero value of a scalar or slice target.
func placeholderHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	m, ok := data.(map[string]any)
	if !ok || len(m) > 0 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Map, reflect.Struct, reflect.Interface:
		return data, nil
	case reflect.Pointer:
		if to.Elem().Kind() == reflect.Struct {
			return data, nil
		}
	}
	return reflect.Zero(to).Interface(), nil
}

// =========================
// Serialize
// =========================

type fieldTag struct {
	name      string
	omitEmpty bool
	squash    bool
}

func parseTag(f reflect.StructField) (fieldTag, bool) {
	tag, tagged := f.Tag.Lookup(TagName)
	if tag == "-" {
		return fieldTag{}, false
	}
	parts := strings.Split(tag, ",")
	ft := fieldTag{name: parts[0]}
	for _, opt := range parts[1:] {
		switch opt {
		case "omitempty":
			ft.omitEmpty = true
		case "squash":
			ft.squash = true
		}
	}
	if f.Anonymous && !tagged && indirectType(f.Type).Kind() == reflect.Struct {
		ft.squash = true
	}
	if ft.name == "" {
		ft.name = f.Name
	}
	return ft, true
}

func writeFields(m *value.Map, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := parseTag(f)
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if tag.squash {
			for fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					break
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				if err := writeFields(m, fv); err != nil {
					return err
				}
			}
			continue
		}
		if tag.omitEmpty && fv.IsZero() {
			continue
		}
		n, err := nodeOf(fv)
		if err != nil {
			return errors.Wrapf(err, "field %s", f.Name)
		}
		if tag.omitEmpty && !value.Truthy(n) {
			continue
		}
		m.Set(tag.name, n)
	}
	return nil
}

func nodeOf(rv reflect.Value) (value.Node, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return value.Null(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return nodeOf(rv.Elem())
	case reflect.Struct:
		if rv.Type() == timeType {
			return value.FromUntyped(rv.Interface())
		}
		m := value.NewMap()
		if err := writeFields(m, rv); err != nil {
			return nil, err
		}
		return m, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return value.String(string(rv.Bytes())), nil
		}
		s := value.NewSeq()
		for i := 0; i < rv.Len(); i++ {
			n, err := nodeOf(rv.Index(i))
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			s.Append(n)
		}
		return s, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.Wrapf(value.ErrUnsupportedValueKind, "map key %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		m := value.NewMap()
		for _, k := range keys {
			n, err := nodeOf(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())))
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			m.Set(k, n)
		}
		return m, nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return nil, errors.Errorf("mapper: %d overflows int64", rv.Uint())
		}
		return value.Int(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(rv.Float()), nil
	default:
		return value.FromUntyped(rv.Interface())
	}
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
