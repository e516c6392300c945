package value

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap().
		Set("name", String("testName")).
		Set("age", Int(10)).
		Set("name", String("other"))

	assert.Equal(t, []string{"name", "age"}, m.Keys())
	n, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, "other", n.Value())

	m.Delete("name")
	assert.Equal(t, []string{"age"}, m.Keys())
	assert.False(t, m.Has("name"))
	m.Delete("missing")
	assert.Equal(t, 1, m.Len())
}

func TestMapAllStopsEarly(t *testing.T) {
	m := NewMap().Set("a", Int(1)).Set("b", Int(2)).Set("c", Int(3))
	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestGet(t *testing.T) {
	root := NewMap().Set("Root", NewMap().Set("name", String("x")))

	n, ok := Get(root, "Root", "name")
	require.True(t, ok)
	assert.Equal(t, "x", n.Value())

	_, ok = Get(root, "Root", "name", "deeper")
	assert.False(t, ok)
	_, ok = Get(root, "missing")
	assert.False(t, ok)

	u, ok := GetUntyped(root, "Root")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "x"}, u)
}

func TestTruthy(t *testing.T) {
	falsy := []Node{nil, Null(), String(""), Int(0), Float(0), Bool(false), NewSeq(), NewMap()}
	for _, n := range falsy {
		assert.False(t, Truthy(n), "%v", n)
	}
	truthy := []Node{String("a"), Int(-1), Float(0.5), Bool(true), NewSeq(Null()), NewMap().Set("a", Null())}
	for _, n := range truthy {
		assert.True(t, Truthy(n), "%v", n)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "10", Text(Int(10)))
	assert.Equal(t, "2.0", Text(Float(2)))
	assert.Equal(t, "3.14", Text(Float(3.14)))
	assert.Equal(t, "1.0e+21", Text(Float(1e21)))
	assert.Equal(t, "1.0e-05", Text(Float(0.00001)))
	assert.Equal(t, "-2.5e-07", Text(Float(-2.5e-7)))
	assert.Equal(t, "inf", Text(Float(math.Inf(1))))
	assert.Equal(t, "true", Text(Bool(true)))
	assert.Equal(t, "null", Text(Null()))
	assert.Equal(t, "plain", Text(String("plain")))
	assert.Equal(t, `{"a":1}`, Text(NewMap().Set("a", Int(1))))
}

func TestFromUntyped(t *testing.T) {
	n, err := FromUntyped(map[string]any{
		"b": []any{1, "two", 3.5},
		"a": nil,
		"c": map[string]int{"z": 1},
	})
	require.NoError(t, err)

	m := n.(*Map)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, `{"a":null,"b":[1,"two",3.5],"c":{"z":1}}`, Format(m))

	_, err = FromUntyped(struct{}{})
	assert.True(t, errors.Is(err, ErrUnsupportedValueKind))

	_, err = FromUntyped(uint64(math.MaxUint64))
	assert.Error(t, err)
}

func TestToUntypedRoundTrip(t *testing.T) {
	m := NewMap().
		Set("s", String("x")).
		Set("list", NewSeq(Int(1), Float(1.5))).
		Set("nested", NewMap().Set("ok", Bool(true)))

	back, err := FromUntyped(ToUntyped(m))
	require.NoError(t, err)
	assert.Equal(t, ToUntyped(m), ToUntyped(back))
}

func TestCanonicalText(t *testing.T) {
	src := `{"name": "testName", "age": 10, "ratio": 0.5, "tags": ["a", null, true], "Root": {"inner": {}}}`

	m, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "ratio", "tags", "Root"}, m.Keys())

	age, _ := m.Get("age")
	assert.Equal(t, Kinds.Int, age.Kind())
	ratio, _ := m.Get("ratio")
	assert.Equal(t, Kinds.Float, ratio.Kind())

	assert.Equal(t,
		`{"name":"testName","age":10,"ratio":0.5,"tags":["a",null,true],"Root":{"inner":{}}}`,
		Format(m))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(`[1, 2]`)
	assert.Error(t, err)

	_, err = Parse(``)
	assert.Error(t, err)

	m, err := Parse(`null`)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestFormatDoesNotEscapeHTML(t *testing.T) {
	m := NewMap().Set("tag", String("<a>"))
	assert.Equal(t, `{"tag":"<a>"}`, Format(m))
}
