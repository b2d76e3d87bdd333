package template

import (
	"strings"
	"testing"
)

func FuzzLexRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"plain text",
		"{{ var }}",
		"{% tag a b %}",
		"{# comment #}",
		"a\r\nb\nc\rd",
		"{% verbatim %}{{ raw }}{% endverbatim %}",
		"{% verbatim keep %}{% endverbatim %}{% endverbatim keep %}",
		`{{ "}}" }}`,
		"{{ a }}{% b %}{# c #}\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		newline := DetectNewline([]byte(input))
		tokens, err := Lex(input, newline)
		if err != nil {
			return
		}

		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Source())
		}
		if b.String() != input {
			t.Fatalf("lex round trip lost bytes:\n in: %q\nout: %q", input, b.String())
		}
	})
}
