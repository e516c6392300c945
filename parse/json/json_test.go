package json

import (
	"testing"

	"github.com/dzjyyds666/serde/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	m := value.NewMap().Set("age", value.Int(10)).Set("name", value.String("testName"))

	out, err := Encode(m, "")
	require.NoError(t, err)
	assert.Equal(t, `{"age":10,"name":"testName"}`, string(out))

	out, err = Encode(value.NewMap().Set("age", value.Null()).Set("name", value.Null()), "")
	require.NoError(t, err)
	assert.Equal(t, `{"age":null,"name":null}`, string(out))

	out, err = Encode(m, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"age\": 10,\n  \"name\": \"testName\"\n}", string(out))
}

func TestDecode(t *testing.T) {
	m, err := Decode([]byte(`{"name": "testName", "age": 10, "nested": {"b": [1, 2.5]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "nested"}, m.Keys())

	age, _ := m.Get("age")
	assert.Equal(t, int64(10), age.Value())

	b, ok := value.GetUntyped(m, "nested", "b")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), 2.5}, b)
}

func TestDecodeNull(t *testing.T) {
	m, err := Decode([]byte(" null "))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	m := value.NewMap().
		Set("z", value.String("<tag> & \"quote\"")).
		Set("a", value.NewSeq(value.Bool(true), value.Null())).
		Set("m", value.NewMap().Set("f", value.Float(2)))

	out, err := Encode(m, "")
	require.NoError(t, err)

	back, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, m.Keys(), back.Keys())
	assert.Equal(t, value.ToUntyped(m), value.ToUntyped(back))
}
