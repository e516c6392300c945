package xml

import (
	"fmt"
	"regexp"
	"strings"
)

// =========================
// Tokens
// =========================

type TokenType string

var TokenTypes = struct {
	OpenTag  TokenType
	CloseTag TokenType
	Text     TokenType
}{
	OpenTag:  "open_tag",
	CloseTag: "close_tag",
	Text:     "text",
}

type Token struct {
	Type    TokenType
	Content string
}

func (t Token) String() string {
	return fmt.Sprintf("Token(type=%s, content=%q)", t.Type, t.Content)
}

// Name returns the bare tag name of a tag token, without brackets, slashes or
// attributes. Text tokens have no name.
func (t Token) Name() string {
	if t.Type == TokenTypes.Text {
		return ""
	}
	m := tagPattern.FindStringSubmatch(t.Content)
	if m == nil {
		return ""
	}
	return m[2]
}

// SelfClosing reports whether a close tag token has the `<name/>` form.
func (t Token) SelfClosing() bool {
	return t.Type == TokenTypes.CloseTag &&
		!strings.HasPrefix(t.Content, "</") &&
		strings.HasSuffix(t.Content, "/>")
}

var tagPattern = regexp.MustCompile(`<(/?)(\w+)(.*?)>`)

// Tokenize splits s into tag and text tokens. Anything between two tags is a
// text token; a tag containing '/' anywhere is a close tag.
func Tokenize(s string) []Token {
	var tokens []Token
	start := 0
	for _, loc := range tagPattern.FindAllStringIndex(s, -1) {
		if loc[0] > start {
			tokens = append(tokens, Token{Type: TokenTypes.Text, Content: s[start:loc[0]]})
		}
		content := s[loc[0]:loc[1]]
		if strings.Contains(content, "/") {
			tokens = append(tokens, Token{Type: TokenTypes.CloseTag, Content: content})
		} else {
			tokens = append(tokens, Token{Type: TokenTypes.OpenTag, Content: content})
		}
		start = loc[1]
	}
	if start < len(s) {
		tokens = append(tokens, Token{Type: TokenTypes.Text, Content: s[start:]})
	}
	return tokens
}
