package toml

// The mini engine reads a flat subset of TOML: one `key = value` pair per
// line, where value is a double-quoted string, an integer or a dotted float.
//
// Limits:
// - tokens are split on every space, so quoted strings with spaces break apart
// - no tables, arrays, comments or escapes
// - integers must fit in int64 and take no '_' separators, others read as labels
// - malformed lines are dropped, Decode never fails

import (
	"strconv"
	"strings"

	"github.com/dzjyyds666/serde/value"
)

// =========================
// Token Classification
// =========================

type tokenKind string

var tokenKinds = struct {
	Label      tokenKind
	Assignment tokenKind
	String     tokenKind
	Float      tokenKind
	Int        tokenKind
}{
	Label:      "label",
	Assignment: "assignment",
	String:     "str",
	Float:      "float",
	Int:        "int",
}

type classified struct {
	kind tokenKind
	text string
	f    float64
	i    int64
}

// rules are evaluated in order; the first match wins and anything left is a
// label.
var rules = []struct {
	kind  tokenKind
	match func(s string) (classified, bool)
}{
	{tokenKinds.String, func(s string) (classified, bool) {
		if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
			return classified{kind: tokenKinds.String, text: s[1 : len(s)-1]}, true
		}
		return classified{}, false
	}},
	{tokenKinds.Assignment, func(s string) (classified, bool) {
		return classified{kind: tokenKinds.Assignment, text: s}, s == "="
	}},
	{tokenKinds.Float, func(s string) (classified, bool) {
		if !strings.Contains(s, ".") {
			return classified{}, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return classified{}, false
		}
		return classified{kind: tokenKinds.Float, text: s, f: f}, true
	}},
	{tokenKinds.Int, func(s string) (classified, bool) {
		if strings.Contains(s, ".") {
			return classified{}, false
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return classified{}, false
		}
		return classified{kind: tokenKinds.Int, text: s, i: i}, true
	}},
}

func classify(s string) classified {
	for _, r := range rules {
		if c, ok := r.match(s); ok {
			return c
		}
	}
	return classified{kind: tokenKinds.Label, text: s}
}

// =========================
// Tokenizer
// =========================

func isSeparator(c rune) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

func tokenize(s string) []string {
	var (
		out     []string
		pending strings.Builder
	)
	flush := func() {
		if pending.Len() > 0 {
			out = append(out, pending.String())
			pending.Reset()
		}
	}
	for _, c := range s {
		if isSeparator(c) {
			flush()
			continue
		}
		pending.WriteRune(c)
	}
	flush()
	return out
}

// =========================
// Accumulator
// =========================

// accumulator keeps at most one token per kind. A second token of the same
// kind replaces the first.
type accumulator struct {
	slots map[tokenKind]classified
}

func newAccumulator() *accumulator {
	return &accumulator{slots: make(map[tokenKind]classified, 3)}
}

func (a *accumulator) add(c classified) {
	a.slots[c.kind] = c
}

func (a *accumulator) full() bool { return len(a.slots) == 3 }

func (a *accumulator) reset() { clear(a.slots) }

// flush writes the accumulated pair into out. Groups without a label or a
// value are dropped.
func (a *accumulator) flush(out *value.Map) {
	defer a.reset()

	label, ok := a.slots[tokenKinds.Label]
	if !ok {
		return
	}
	if s, ok := a.slots[tokenKinds.String]; ok {
		out.Set(label.text, value.String(s.text))
		return
	}
	if f, ok := a.slots[tokenKinds.Float]; ok {
		out.Set(label.text, value.Float(f.f))
		return
	}
	if i, ok := a.slots[tokenKinds.Int]; ok {
		out.Set(label.text, value.Int(i.i))
	}
}

// =========================
// Public API
// =========================

// Decode reads flat `key = value` lines into an ordered map of scalars.
func Decode(data []byte) *value.Map {
	out := value.NewMap()
	acc := newAccumulator()
	for _, tok := range tokenize(string(data)) {
		acc.add(classify(tok))
		if acc.full() {
			acc.flush(out)
		}
	}
	return out
}
