package format

import "github.com/djade-fmt/djade/internal/template"

// rewriteEndblockLabels enforces the endblock label policy. Openers and
// closers are matched by a stack keyed on occurrence only; input labels need
// not agree. A closer on the same rendered line as its opener loses any
// label; a closer on a later line takes the opener's label when the opener
// has one. A closer for an unlabelled opener is left as written.
func rewriteEndblockLabels(tokens []template.Token) {
	type opener struct {
		index int
		label string
	}
	var stack []opener

	for i, t := range tokens {
		switch t.TagName() {
		case "block":
			_, args := template.ParseTag(t.Content)
			label := ""
			if len(args) > 0 {
				label = args[0]
			}
			stack = append(stack, opener{index: i, label: label})
		case "endblock":
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch {
			case sameLine(tokens, open.index, i):
				tokens[i].Content = "endblock"
			case open.label != "":
				tokens[i].Content = "endblock " + open.label
			}
		}
	}
}

// sameLine reports whether no Newline token separates two stream positions.
func sameLine(tokens []template.Token, from, to int) bool {
	for _, t := range tokens[from:to] {
		if t.Kind == template.Newline {
			return false
		}
	}
	return true
}

// unindentExtends applies the top-level layout policy for templates that
// extend a parent. A template uses extends when its first non-blank,
// non-comment token is an extends tag. Indentation is stripped from the
// extends tag, from everything between it and the first top-level block, and
// from every top-level block/endblock tag; the gap between consecutive
// top-level pairs collapses to exactly one blank line.
func unindentExtends(tokens []template.Token, newline string) []template.Token {
	extendsIdx := -1
	for i, t := range tokens {
		if t.IsBlank() || t.Kind == template.Comment {
			continue
		}
		if t.TagName() == "extends" {
			extendsIdx = i
		}
		break
	}
	if extendsIdx < 0 {
		return tokens
	}

	topBlock := make(map[int]bool)
	topEnd := make(map[int]bool)
	firstBlockIdx := -1
	depth := 0
	for i, t := range tokens {
		switch t.TagName() {
		case "block":
			if depth == 0 {
				topBlock[i] = true
				if firstBlockIdx < 0 {
					firstBlockIdx = i
				}
			}
			depth++
		case "endblock":
			depth--
			if depth == 0 {
				topEnd[i] = true
			}
			if depth < 0 {
				depth = 0
			}
		}
	}

	out := make([]template.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		// Unindent the extends prologue and the top-level tags themselves.
		if t.IsWhitespaceText() {
			inPrologue := firstBlockIdx >= 0 && i > extendsIdx && i < firstBlockIdx
			beforeTopTag := i+1 < len(tokens) && (i+1 == extendsIdx || topBlock[i+1] || topEnd[i+1])
			if inPrologue || beforeTopTag {
				continue
			}
		}

		out = append(out, t)

		// Collapse the gap after a top-level endblock to one blank line when
		// only blank tokens separate it from the next top-level block.
		if topEnd[i] {
			j := i + 1
			blankOnly := true
			for j < len(tokens) && !topBlock[j] {
				if !tokens[j].IsBlank() {
					blankOnly = false
					break
				}
				j++
			}
			if blankOnly && j < len(tokens) && topBlock[j] {
				out = append(out,
					template.Token{Kind: template.Newline, Content: newline},
					template.Token{Kind: template.Newline, Content: newline},
				)
				i = j - 1
			}
		}
	}
	return out
}
