package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "variable", Variable.String())
	assert.Equal(t, "tag", Tag.String())
	assert.Equal(t, "comment", Comment.String())
	assert.Equal(t, "newline", Newline.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestTokenSourceAndRender(t *testing.T) {
	tests := []struct {
		name   string
		token  Token
		source string
		render string
	}{
		{"variable", Token{Kind: Variable, Content: "egg"}, "{{egg}}", "{{ egg }}"},
		{"variable with original padding", Token{Kind: Variable, Content: " egg "}, "{{ egg }}", "{{  egg  }}"},
		{"tag", Token{Kind: Tag, Content: "load a"}, "{%load a%}", "{% load a %}"},
		{"comment", Token{Kind: Comment, Content: "note"}, "{#note#}", "{# note #}"},
		{"text", Token{Kind: Text, Content: "plain"}, "plain", "plain"},
		{"newline", Token{Kind: Newline, Content: "\r\n"}, "\r\n", "\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.source, tt.token.Source())
			assert.Equal(t, tt.render, tt.token.Render())
		})
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{"simple", Token{Kind: Tag, Content: " load a b "}, "load"},
		{"bare", Token{Kind: Tag, Content: "endblock"}, "endblock"},
		{"multiline body", Token{Kind: Tag, Content: "\n load\n a "}, "load"},
		{"empty body", Token{Kind: Tag, Content: "  "}, ""},
		{"not a tag", Token{Kind: Variable, Content: "load"}, ""},
		{"case preserved", Token{Kind: Tag, Content: "LOAD a"}, "LOAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.TagName())
		})
	}
}

func TestIsWhitespaceTextAndIsBlank(t *testing.T) {
	assert.True(t, Token{Kind: Text, Content: "  \t"}.IsWhitespaceText())
	assert.False(t, Token{Kind: Text, Content: ""}.IsWhitespaceText())
	assert.False(t, Token{Kind: Text, Content: " x "}.IsWhitespaceText())
	assert.False(t, Token{Kind: Newline, Content: "\n"}.IsWhitespaceText())

	assert.True(t, Token{Kind: Newline, Content: "\n"}.IsBlank())
	assert.True(t, Token{Kind: Text, Content: "   "}.IsBlank())
	assert.False(t, Token{Kind: Text, Content: "x"}.IsBlank())
	assert.False(t, Token{Kind: Tag, Content: "load"}.IsBlank())
}
