package format

import (
	"strings"

	"github.com/djade-fmt/djade/internal/template"
)

// normalizeContent canonicalizes the body of every Variable, Tag, and
// Comment token in place. Text and Newline tokens pass through untouched, so
// the pass never changes the number of construct tokens in the stream.
func normalizeContent(tokens []template.Token) {
	for i, t := range tokens {
		switch t.Kind {
		case template.Variable:
			tokens[i].Content = template.ParseExpression(t.Content).String()
		case template.Tag:
			tokens[i].Content = strings.Join(template.SplitLexemes(t.Content), " ")
		case template.Comment:
			tokens[i].Content = strings.TrimSpace(t.Content)
		}
	}
}

// trimLeadingBlankLines removes blank lines from the start of the stream: a
// run of Newline tokens, each optionally preceded by whitespace-only Text.
func trimLeadingBlankLines(tokens []template.Token) []template.Token {
	for len(tokens) > 0 {
		switch {
		case tokens[0].Kind == template.Newline:
			tokens = tokens[1:]
		case tokens[0].IsWhitespaceText() && len(tokens) > 1 && tokens[1].Kind == template.Newline:
			tokens = tokens[2:]
		default:
			return tokens
		}
	}
	return tokens
}

// trimTrailingBlankLines collapses the blank suffix of the stream (Newline
// and whitespace-only Text tokens) to exactly one trailing Newline, appending
// one if the last content token has no terminator. An empty stream stays
// empty.
func trimTrailingBlankLines(tokens []template.Token, newline string) []template.Token {
	end := len(tokens)
	for end > 0 && tokens[end-1].IsBlank() {
		end--
	}
	tokens = tokens[:end]
	if len(tokens) == 0 {
		return tokens
	}
	return append(tokens, template.Token{Kind: template.Newline, Content: newline})
}
