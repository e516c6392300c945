// Package mapper defines how records are turned into value maps and back.
//
// A mapper knows the shape of one record type; the codecs only ever see the
// value maps it produces. Three implementations are provided:
//   - Funcs wraps a pair of plain functions
//   - Text works on the canonical textual form (ordered JSON) of a map
//   - Struct maps tagged Go structs by reflection
package mapper

import (
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// Mapper converts records of type R to and from value maps.
//
// MapSerialize should leave out fields that are absent; encoders that cannot
// render null values rely on it. MapDeserialize fills record from m and
// returns it, which lets value records be returned by copy.
type Mapper[R any] interface {
	MapSerialize(record R) (*value.Map, error)
	MapDeserialize(record R, m *value.Map) (R, error)
}

// Funcs adapts two functions into a Mapper.
type Funcs[R any] struct {
	Serialize   func(record R) (*value.Map, error)
	Deserialize func(record R, m *value.Map) (R, error)
}

func (f Funcs[R]) MapSerialize(record R) (*value.Map, error) {
	if f.Serialize == nil {
		return nil, errors.New("mapper: no serialize func")
	}
	return f.Serialize(record)
}

func (f Funcs[R]) MapDeserialize(record R, m *value.Map) (R, error) {
	if f.Deserialize == nil {
		return record, errors.New("mapper: no deserialize func")
	}
	return f.Deserialize(record, m)
}

// Text adapts mappers that speak the canonical textual form, a JSON object
// whose keys keep their order. See value.Format and value.Parse.
type Text[R any] struct {
	Serialize   func(record R) ([]byte, error)
	Deserialize func(record R, data []byte) (R, error)
}

func (t Text[R]) MapSerialize(record R) (*value.Map, error) {
	if t.Serialize == nil {
		return nil, errors.New("mapper: no serialize func")
	}
	data, err := t.Serialize(record)
	if err != nil {
		return nil, err
	}
	m, err := value.Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "mapper: parse canonical text")
	}
	return m, nil
}

func (t Text[R]) MapDeserialize(record R, m *value.Map) (R, error) {
	if t.Deserialize == nil {
		return record, errors.New("mapper: no deserialize func")
	}
	return t.Deserialize(record, []byte(value.Format(m)))
}
