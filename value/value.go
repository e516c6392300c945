// Package value defines the intermediate tree exchanged between the format
// codecs and record mappers.
//
// A tree is built from three node types:
// - Value: a scalar (string, int64, float64, bool or null)
// - Seq:   an ordered sequence of nodes
// - Map:   an ordered mapping from string keys to nodes
//
// Map keeps insertion order so that encoding the same tree twice yields the
// same bytes.
package value

import (
	"iter"

	"github.com/pkg/errors"
)

// ErrUnsupportedValueKind is returned by encoders asked to render a node kind
// they have no rule for.
var ErrUnsupportedValueKind = errors.New("unsupported value kind")

// =========================
// Kinds
// =========================

type Kind string

var Kinds = struct {
	Null   Kind
	String Kind
	Int    Kind
	Float  Kind
	Bool   Kind
	Seq    Kind
	Map    Kind
}{
	Null:   "null",
	String: "string",
	Int:    "int",
	Float:  "float",
	Bool:   "bool",
	Seq:    "seq",
	Map:    "map",
}

type Node interface {
	Kind() Kind
	Value() any
}

// -------- Value --------

type Value struct {
	Type Kind
	V    any
}

func (v *Value) Kind() Kind { return v.Type }

func (v *Value) Value() any { return v.V }

func String(s string) *Value { return &Value{Type: Kinds.String, V: s} }

func Int(i int64) *Value { return &Value{Type: Kinds.Int, V: i} }

func Float(f float64) *Value { return &Value{Type: Kinds.Float, V: f} }

func Bool(b bool) *Value { return &Value{Type: Kinds.Bool, V: b} }

func Null() *Value { return &Value{Type: Kinds.Null} }

// -------- Seq --------

type Seq struct {
	Elems []Node
}

func NewSeq(elems ...Node) *Seq {
	return &Seq{Elems: elems}
}

func (*Seq) Kind() Kind { return Kinds.Seq }

func (s *Seq) Value() any { return s.Elems }

func (s *Seq) Len() int { return len(s.Elems) }

func (s *Seq) Append(n Node) { s.Elems = append(s.Elems, n) }

// -------- Map --------

// Map is an insertion-ordered mapping. The zero value is not usable; create
// one with NewMap.
type Map struct {
	keys  []string
	items map[string]Node
}

func NewMap() *Map {
	return &Map{items: make(map[string]Node)}
}

func (*Map) Kind() Kind { return Kinds.Map }

func (*Map) Value() any { return nil }

// Set stores n under key. Overwriting an existing key keeps its position.
func (m *Map) Set(key string, n Node) *Map {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = n
	return m
}

func (m *Map) Get(key string) (Node, bool) {
	n, ok := m.items[key]
	return n, ok
}

func (m *Map) Has(key string) bool {
	_, ok := m.items[key]
	return ok
}

func (m *Map) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int { return len(m.keys) }

// All iterates the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}
