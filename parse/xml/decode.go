package xml

import (
	"strings"

	"github.com/dzjyyds666/serde/value"
)

type DecodeOption func(*decoder)

// CaptureText stores non-blank text content as a string leaf. Without it,
// text is discarded and every element decodes to an empty map placeholder.
func CaptureText() DecodeOption {
	return func(d *decoder) {
		d.captureText = true
	}
}

type decoder struct {
	out         *value.Map
	chain       []string
	captureText bool
}

// Decode builds a nested map keyed by element names. Close tags that do not
// match the innermost open element are ignored, and unclosed elements at the
// end of input are kept as they are. Decode never fails.
func Decode(data []byte, opts ...DecodeOption) *value.Map {
	d := &decoder{out: value.NewMap()}
	for _, opt := range opts {
		opt(d)
	}
	for _, tok := range Tokenize(string(data)) {
		d.step(tok)
	}
	return d.out
}

// Depth returns how many elements are open after feeding tokens.
func Depth(tokens []Token) int {
	d := &decoder{out: value.NewMap()}
	for _, tok := range tokens {
		d.step(tok)
	}
	return len(d.chain)
}

func (d *decoder) step(tok Token) {
	switch tok.Type {
	case TokenTypes.OpenTag:
		d.chain = append(d.chain, tok.Name())
		d.walk(d.chain, true)
	case TokenTypes.CloseTag:
		name := tok.Name()
		if tok.SelfClosing() {
			if parent := d.walk(d.chain, true); parent != nil && !parent.Has(name) {
				parent.Set(name, value.NewMap())
			}
			return
		}
		if n := len(d.chain); n > 0 && d.chain[n-1] == name {
			d.chain = d.chain[:n-1]
		}
	default:
		d.text(tok.Content)
	}
}

func (d *decoder) text(content string) {
	if len(d.chain) == 0 {
		return
	}
	if d.walk(d.chain, false) == nil {
		return
	}
	trimmed := strings.TrimSpace(content)
	if !d.captureText || trimmed == "" {
		return
	}
	parent := d.walk(d.chain[:len(d.chain)-1], false)
	if parent == nil {
		return
	}
	last := d.chain[len(d.chain)-1]
	if n, ok := parent.Get(last); ok {
		if m, isMap := n.(*value.Map); isMap && m.Len() == 0 {
			parent.Set(last, value.String(trimmed))
		}
	}
}

// walk returns the map at path, creating empty placeholders for missing
// elements. A scalar in the way is replaced when replace is set; otherwise
// walk gives up and returns nil.
func (d *decoder) walk(path []string, replace bool) *value.Map {
	cur := d.out
	for _, name := range path {
		n, ok := cur.Get(name)
		if !ok {
			next := value.NewMap()
			cur.Set(name, next)
			cur = next
			continue
		}
		next, isMap := n.(*value.Map)
		if !isMap {
			if !replace {
				return nil
			}
			next = value.NewMap()
			cur.Set(name, next)
		}
		cur = next
	}
	return cur
}
