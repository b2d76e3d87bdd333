package format

import (
	"sort"

	"github.com/djade-fmt/djade/internal/template"
)

// loadTag is the parsed shape of a {% load %} tag: either the plain form
// ({% load a b c %}) or the from form ({% load x y from lib %}).
type loadTag struct {
	names    []string
	library  string
	fromForm bool
}

// parseLoadTag parses the body of a load tag. A "from" in the second-to-last
// argument position selects the from form; everything else is plain.
func parseLoadTag(t template.Token) loadTag {
	_, args := template.ParseTag(t.Content)
	if len(args) >= 2 && args[len(args)-2] == "from" {
		return loadTag{
			names:    args[:len(args)-2],
			library:  args[len(args)-1],
			fromForm: true,
		}
	}
	return loadTag{names: args}
}

// body renders the canonical tag body with deduplicated, sorted names.
func (l loadTag) body() string {
	names := sortedUnique(l.names)
	if l.fromForm {
		return template.JoinTag("load", append(names, "from", l.library))
	}
	return template.JoinTag("load", names)
}

// mergeable reports whether another load tag can be folded into this one:
// both plain, or both from the same library.
func (l loadTag) mergeable(other loadTag) bool {
	if l.fromForm != other.fromForm {
		return false
	}
	return !l.fromForm || l.library == other.library
}

// mergeLoadTags sorts and deduplicates the arguments of every load tag and
// merges runs of load tags separated only by blank tokens. Only tags of the
// same shape merge; a plain-form tag never folds into a from-form tag. The
// separators between merged tags are dropped along with the later tags.
func mergeLoadTags(tokens []template.Token) []template.Token {
	out := tokens[:0]
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind != template.Tag || t.TagName() != "load" {
			out = append(out, t)
			i++
			continue
		}

		current := parseLoadTag(t)
		var pending []template.Token
		j := i + 1
		for j < len(tokens) {
			next := tokens[j]
			if next.IsBlank() {
				pending = append(pending, next)
				j++
				continue
			}
			if next.Kind == template.Tag && next.TagName() == "load" {
				if follower := parseLoadTag(next); current.mergeable(follower) {
					current.names = append(current.names, follower.names...)
					pending = pending[:0]
					j++
					continue
				}
			}
			break
		}

		out = append(out, template.Token{Kind: template.Tag, Content: current.body()})
		out = append(out, pending...)
		i = j
	}
	return out
}

// sortedUnique returns the distinct elements of names in ascending byte
// order. The input order is not preserved.
func sortedUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			unique = append(unique, n)
		}
	}
	sort.Strings(unique)
	return unique
}
