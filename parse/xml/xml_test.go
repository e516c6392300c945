package xml

import (
	"testing"

	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
	"github.com/smartystreets/goconvey/convey"
)

func TestTokenize(t *testing.T) {
	convey.Convey("element with text", t, func() {
		tokens := Tokenize("<a>text</a>")
		convey.So(tokens, convey.ShouldResemble, []Token{
			{Type: TokenTypes.OpenTag, Content: "<a>"},
			{Type: TokenTypes.Text, Content: "text"},
			{Type: TokenTypes.CloseTag, Content: "</a>"},
		})
	})

	convey.Convey("leading and trailing text", t, func() {
		tokens := Tokenize("head<a/>tail")
		convey.So(len(tokens), convey.ShouldEqual, 3)
		convey.So(tokens[0].Type, convey.ShouldEqual, TokenTypes.Text)
		convey.So(tokens[1].Type, convey.ShouldEqual, TokenTypes.CloseTag)
		convey.So(tokens[1].SelfClosing(), convey.ShouldBeTrue)
		convey.So(tokens[2].Content, convey.ShouldEqual, "tail")
	})

	convey.Convey("no tags at all", t, func() {
		convey.So(Tokenize("just text"), convey.ShouldResemble, []Token{{Type: TokenTypes.Text, Content: "just text"}})
		convey.So(Tokenize(""), convey.ShouldBeEmpty)
	})

	convey.Convey("names drop brackets and attributes", t, func() {
		tokens := Tokenize(`<item id="1"></item>`)
		convey.So(tokens[0].Type, convey.ShouldEqual, TokenTypes.OpenTag)
		convey.So(tokens[0].Name(), convey.ShouldEqual, "item")
		convey.So(tokens[1].Name(), convey.ShouldEqual, "item")
		convey.So(tokens[1].SelfClosing(), convey.ShouldBeFalse)
		convey.So(Token{Type: TokenTypes.Text, Content: "x"}.Name(), convey.ShouldEqual, "")
	})

	convey.Convey("a slash in attributes makes a close tag", t, func() {
		tokens := Tokenize(`<a href="x/y">`)
		convey.So(tokens[0].Type, convey.ShouldEqual, TokenTypes.CloseTag)
	})
}

func TestDecode(t *testing.T) {
	convey.Convey("nesting", t, func() {
		src := "<Root><name></name></Root>"
		m := Decode([]byte(src))
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{
			"Root": map[string]any{"name": map[string]any{}},
		})
		convey.So(Depth(Tokenize(src)), convey.ShouldEqual, 0)
	})

	convey.Convey("text is discarded by default", t, func() {
		m := Decode([]byte("<Root>\n  <name>testName</name>\n  <age>10</age>\n  <test/>\n</Root>\n"))
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{
			"Root": map[string]any{
				"name": map[string]any{},
				"age":  map[string]any{},
				"test": map[string]any{},
			},
		})
		root, _ := m.Get("Root")
		convey.So(root.(*value.Map).Keys(), convey.ShouldResemble, []string{"name", "age", "test"})
	})

	convey.Convey("text capture", t, func() {
		m := Decode([]byte("<Root>\n  <name>testName</name>\n  <age>10</age>\n  <test/>\n</Root>\n"), CaptureText())
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{
			"Root": map[string]any{
				"name": "testName",
				"age":  "10",
				"test": map[string]any{},
			},
		})
	})

	convey.Convey("captured text is not replaced by later text", t, func() {
		m := Decode([]byte("<a>x</zzz>y</a>"), CaptureText())
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{"a": "x"})
	})

	convey.Convey("mismatched close tags are ignored", t, func() {
		src := "<a><b></c></b></a>"
		m := Decode([]byte(src))
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{
			"a": map[string]any{"b": map[string]any{}},
		})
		convey.So(Depth(Tokenize(src)), convey.ShouldEqual, 0)
	})

	convey.Convey("unclosed elements are kept", t, func() {
		src := "<a><b>"
		m := Decode([]byte(src))
		convey.So(value.ToUntyped(m), convey.ShouldResemble, map[string]any{
			"a": map[string]any{"b": map[string]any{}},
		})
		convey.So(Depth(Tokenize(src)), convey.ShouldEqual, 2)
	})

	convey.Convey("text outside elements is ignored", t, func() {
		m := Decode([]byte("hello <a></a> bye"))
		convey.So(m.Keys(), convey.ShouldResemble, []string{"a"})
		convey.So(Decode(nil).Len(), convey.ShouldEqual, 0)
	})
}

func TestEncode(t *testing.T) {
	convey.Convey("falsy values self close", t, func() {
		m := value.NewMap().
			Set("age", value.Int(0)).
			Set("name", value.String("testName")).
			Set("test", value.Null())
		out, err := Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldEqual, "<age/>\n<name>testName</name>\n<test/>\n")
	})

	convey.Convey("nested maps are indented", t, func() {
		m := value.NewMap().Set("Root", value.NewMap().
			Set("name", value.String("testName")).
			Set("age", value.Int(10)).
			Set("test", value.Null()))
		out, err := Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldEqual,
			"<Root>\n  <name>testName</name>\n  <age>10</age>\n  <test/>\n</Root>\n")
	})

	convey.Convey("close tags of nested elements start the line", t, func() {
		m := value.NewMap().Set("a", value.NewMap().Set("b", value.NewMap().Set("c", value.Float(1.5))))
		out, err := Encode(m, 1)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldEqual,
			"  <a>\n    <b>\n      <c>1.5</c>\n</b>\n</a>\n")

		m = value.NewMap().Set("Root", value.NewMap().Set("inner", value.NewMap().Set("k", value.Int(1))))
		out, err = Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldEqual, "<Root>\n  <inner>\n    <k>1</k>\n</inner>\n</Root>\n")
	})

	convey.Convey("sequences are unsupported", t, func() {
		m := value.NewMap().Set("list", value.NewSeq(value.Int(1)))
		_, err := Encode(m, 0)
		convey.So(errors.Is(err, value.ErrUnsupportedValueKind), convey.ShouldBeTrue)
	})

	convey.Convey("empty sequences are falsy", t, func() {
		out, err := Encode(value.NewMap().Set("list", value.NewSeq()), 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldEqual, "<list/>\n")
	})

	convey.Convey("output is stable", t, func() {
		m := value.NewMap()
		for _, k := range []string{"z", "y", "x", "w", "v"} {
			m.Set(k, value.String(k))
		}
		first, err := Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		second, err := Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(second, convey.ShouldResemble, first)
	})

	convey.Convey("encoded keys survive decode", t, func() {
		m := value.NewMap().Set("Root", value.NewMap().
			Set("name", value.String("n")).
			Set("empty", value.Null()))
		out, err := Encode(m, 0)
		convey.So(err, convey.ShouldBeNil)
		back := Decode(out, CaptureText())
		convey.So(value.ToUntyped(back), convey.ShouldResemble, map[string]any{
			"Root": map[string]any{"name": "n", "empty": map[string]any{}},
		})
	})
}
