package template

import "strings"

// Filter is one |name[:arg] segment of a variable's filter chain.
type Filter struct {
	Name   string
	Arg    string
	HasArg bool
}

// Expression is the parsed body of a {{ ... }} construct: a base expression
// followed by zero or more filters. The base and any filter arguments are
// opaque strings; quoted regions inside them keep '|' and ':' literal.
type Expression struct {
	Base    string
	Filters []Filter
}

// ParseExpression splits a variable body into its base expression and filter
// chain. Whitespace around '|' and ':' is discarded; the renderer emits both
// separators with no surrounding whitespace.
func ParseExpression(body string) Expression {
	segments := splitOutsideQuotes(body, '|')
	expr := Expression{Base: strings.TrimSpace(segments[0])}
	for _, seg := range segments[1:] {
		name, arg, hasArg := cutOutsideQuotes(seg, ':')
		f := Filter{Name: strings.TrimSpace(name)}
		if hasArg {
			f.Arg = strings.TrimSpace(arg)
			f.HasArg = true
		}
		expr.Filters = append(expr.Filters, f)
	}
	return expr
}

// String renders the expression in canonical form: base and filters joined
// with '|', filter arguments attached with ':'.
func (e Expression) String() string {
	var b strings.Builder
	b.WriteString(e.Base)
	for _, f := range e.Filters {
		b.WriteByte('|')
		b.WriteString(f.Name)
		if f.HasArg {
			b.WriteByte(':')
			b.WriteString(f.Arg)
		}
	}
	return b.String()
}

// splitOutsideQuotes splits s on sep wherever sep is not inside a single- or
// double-quoted region. An unterminated quote runs to the end of the string.
func splitOutsideQuotes(s string, sep byte) []string {
	var (
		parts []string
		start int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// cutOutsideQuotes splits s around the first unquoted occurrence of sep.
func cutOutsideQuotes(s string, sep byte) (before, after string, found bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == sep:
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
