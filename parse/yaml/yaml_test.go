package yaml

import (
	"strings"
	"testing"

	"github.com/dzjyyds666/serde/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	m := value.NewMap().
		Set("name", value.String("testName")).
		Set("age", value.Int(10)).
		Set("code", value.String("10")).
		Set("tags", value.NewSeq(value.String("a"), value.Bool(true))).
		Set("Root", value.NewMap().Set("test", value.Null()))

	out, err := Encode(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "name: testName\nage: 10\n"), string(out))
	assert.Contains(t, string(out), `code: "10"`)
	assert.Contains(t, string(out), "- a\n")
	assert.True(t, strings.HasSuffix(string(out), "Root:\n  test: null\n"), string(out))
}

func TestDecode(t *testing.T) {
	src := `
name: testName
age: 10
ratio: 0.5
flag: yes
none: ~
anchor: &a {x: 1}
alias: *a
list: [1, two]
`
	m, err := Decode([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "ratio", "flag", "none", "anchor", "alias", "list"}, m.Keys())
	assert.Equal(t, map[string]any{
		"name":   "testName",
		"age":    int64(10),
		"ratio":  0.5,
		"flag":   "yes",
		"none":   nil,
		"anchor": map[string]any{"x": int64(1)},
		"alias":  map[string]any{"x": int64(1)},
		"list":   []any{int64(1), "two"},
	}, value.ToUntyped(m))
}

func TestDecodeEdgeCases(t *testing.T) {
	m, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	m, err = Decode([]byte("~\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	_, err = Decode([]byte("- 1\n- 2\n"))
	assert.Error(t, err)

	_, err = Decode([]byte("a: [1\n"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	m := value.NewMap().
		Set("z", value.Float(2)).
		Set("a", value.NewMap().Set("k", value.String("v")))

	out, err := Encode(m)
	require.NoError(t, err)
	back, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, m.Keys(), back.Keys())
	assert.Equal(t, value.ToUntyped(m), value.ToUntyped(back))
}
