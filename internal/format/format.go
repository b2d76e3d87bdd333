// Package format implements the Django template formatting pipeline.
//
// Formatting is a pure function over an in-memory token stream: tokenize,
// rewrite, render. Rewriting runs content normalization first, then the
// version-gated fixers, then the structural passes, so that fixer renames
// (staticfiles -> static, trans -> translate) participate in the load-tag
// deduplication and sorting that follows. The pipeline is idempotent:
// formatting its own output changes nothing.
package format

import (
	"bytes"

	"github.com/djade-fmt/djade/internal/target"
	"github.com/djade-fmt/djade/internal/template"
)

// Format rewrites template source to canonical style and applies the fixers
// enabled by the target version. It returns the rewritten bytes and whether
// they differ from the input. On a tokenization error the input is returned
// unchanged alongside the error; Format never partially rewrites.
func Format(src []byte, tv target.Version) ([]byte, bool, error) {
	newline := template.DetectNewline(src)
	tokens, err := template.Lex(string(src), newline)
	if err != nil {
		return src, false, err
	}

	normalizeContent(tokens)
	applyFixers(tokens, tv)

	tokens = trimLeadingBlankLines(tokens)
	tokens = mergeLoadTags(tokens)
	rewriteEndblockLabels(tokens)
	tokens = unindentExtends(tokens, newline)
	tokens = trimTrailingBlankLines(tokens, newline)

	out := render(tokens)
	return out, !bytes.Equal(out, src), nil
}

// render concatenates the canonical form of every token.
func render(tokens []template.Token) []byte {
	var buf bytes.Buffer
	for _, t := range tokens {
		buf.WriteString(t.Render())
	}
	return buf.Bytes()
}
