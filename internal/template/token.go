// Package template provides lossless tokenization of Django template source.
//
// The lexer segments raw template text into an ordered stream of typed tokens
// covering the three template constructs ({{ ... }}, {% ... %}, {# ... #}),
// newlines in the detected style, and opaque text in between. Every byte of
// input is attributed to exactly one token, so concatenating the source form
// of all tokens reproduces the input. Construct bodies can be parsed further
// into filter chains and tag lexemes for rewriting.
package template

import "strings"

// Kind identifies the type of a lexed token.
type Kind int

const (
	// Text is raw bytes between template constructs, opaque to the formatter.
	Text Kind = iota
	// Variable is a {{ ... }} construct; Content holds the inner body.
	Variable
	// Tag is a {% ... %} construct; Content holds the inner body.
	Tag
	// Comment is an inline {# ... #} construct; Content holds the inner body.
	Comment
	// Newline is a single line terminator in the detected newline style.
	Newline
)

// String returns the string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Variable:
		return "variable"
	case Tag:
		return "tag"
	case Comment:
		return "comment"
	case Newline:
		return "newline"
	default:
		return "unknown"
	}
}

// Token is one element of the lexed stream.
//
// For Text and Newline tokens Content is the raw byte payload. For the three
// construct kinds Content is the body between the delimiters, exactly as it
// appeared in the source until a rewrite pass canonicalizes it.
type Token struct {
	Kind    Kind
	Content string
}

// Source reconstructs the original byte form of an unmodified token.
func (t Token) Source() string {
	switch t.Kind {
	case Variable:
		return "{{" + t.Content + "}}"
	case Tag:
		return "{%" + t.Content + "%}"
	case Comment:
		return "{#" + t.Content + "#}"
	default:
		return t.Content
	}
}

// Render serializes the token in canonical form. Construct bodies are padded
// with a single space on each side; Text and Newline pass through verbatim.
func (t Token) Render() string {
	switch t.Kind {
	case Variable:
		return "{{ " + t.Content + " }}"
	case Tag:
		return "{% " + t.Content + " %}"
	case Comment:
		return "{# " + t.Content + " #}"
	default:
		return t.Content
	}
}

// TagName returns the tag name of a Tag token, or "" for any other kind or
// an empty tag body. Formatter tag names are matched exactly; Django tag
// names are lowercase identifiers.
func (t Token) TagName() string {
	if t.Kind != Tag {
		return ""
	}
	body := strings.TrimSpace(t.Content)
	if i := strings.IndexAny(body, " \t\r\n\f\v"); i >= 0 {
		body = body[:i]
	}
	return body
}

// IsWhitespaceText reports whether the token is a non-empty Text token
// consisting only of horizontal whitespace.
func (t Token) IsWhitespaceText() bool {
	if t.Kind != Text {
		return false
	}
	return t.Content != "" && strings.TrimLeft(t.Content, " \t\f\v\r") == ""
}

// IsBlank reports whether the token contributes no visible content: a
// Newline or a whitespace-only Text token.
func (t Token) IsBlank() bool {
	return t.Kind == Newline || t.IsWhitespaceText()
}
