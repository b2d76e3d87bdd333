package template

import (
	"fmt"
	"strings"
)

const (
	variableStart = "{{"
	variableEnd   = "}}"
	tagStart      = "{%"
	tagEnd        = "%}"
	commentStart  = "{#"
	commentEnd    = "#}"
)

// ParseError reports a tokenization failure at a byte offset in the input.
type ParseError struct {
	// Offset is the byte position of the unmatched opener.
	Offset int
	// Opener is the two-byte delimiter that was never closed.
	Opener string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unclosed %q at byte %d", e.Opener, e.Offset)
}

// DetectNewline scans src for the first line terminator and returns the
// newline style of the file: "\r\n" if one is found before any lone "\n",
// otherwise "\n".
func DetectNewline(src []byte) string {
	for i, b := range src {
		if b == '\n' {
			if i > 0 && src[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}

// Lex tokenizes a template source string using the given newline style.
//
// The scan is longest-opener-first at each position: "{{", "{%", "{#", then
// the newline sequence. Construct bodies run to the first matching closer
// with no nesting; an opener without a closer fails the whole tokenization.
// Constructs between {% verbatim %} and its matching {% endverbatim %} are
// demoted to Text so later passes leave them untouched.
func Lex(src string, newline string) ([]Token, error) {
	var (
		tokens   []Token
		text     strings.Builder
		verbatim string
		i        int
	)

	flushText := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: Text, Content: text.String()})
			text.Reset()
		}
	}

	for i < len(src) {
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, tagStart):
			end := strings.Index(rest, tagEnd)
			if end < 0 {
				return nil, &ParseError{Offset: i, Opener: tagStart}
			}
			body := rest[len(tagStart):end]
			trimmed := strings.TrimSpace(body)
			raw := rest[:end+len(tagEnd)]
			switch {
			case verbatim != "":
				if trimmed == verbatim {
					verbatim = ""
					flushText()
					tokens = append(tokens, Token{Kind: Tag, Content: body})
				} else {
					text.WriteString(raw)
				}
			default:
				if trimmed == "verbatim" || strings.HasPrefix(trimmed, "verbatim ") {
					verbatim = "end" + trimmed
				}
				flushText()
				tokens = append(tokens, Token{Kind: Tag, Content: body})
			}
			i += end + len(tagEnd)

		case strings.HasPrefix(rest, variableStart):
			end := strings.Index(rest, variableEnd)
			if end < 0 {
				return nil, &ParseError{Offset: i, Opener: variableStart}
			}
			if verbatim != "" {
				text.WriteString(rest[:end+len(variableEnd)])
			} else {
				flushText()
				tokens = append(tokens, Token{Kind: Variable, Content: rest[len(variableStart):end]})
			}
			i += end + len(variableEnd)

		case strings.HasPrefix(rest, commentStart):
			end := strings.Index(rest, commentEnd)
			if end < 0 {
				return nil, &ParseError{Offset: i, Opener: commentStart}
			}
			if verbatim != "" {
				text.WriteString(rest[:end+len(commentEnd)])
			} else {
				flushText()
				tokens = append(tokens, Token{Kind: Comment, Content: rest[len(commentStart):end]})
			}
			i += end + len(commentEnd)

		case strings.HasPrefix(rest, newline):
			flushText()
			tokens = append(tokens, Token{Kind: Newline, Content: newline})
			i += len(newline)

		default:
			text.WriteByte(src[i])
			i++
		}
	}
	flushText()

	return tokens, nil
}
