package format

import (
	"github.com/djade-fmt/djade/internal/target"
	"github.com/djade-fmt/djade/internal/template"
)

// fixer is a version-gated rewrite migrating deprecated template syntax.
type fixer struct {
	floor target.Version
	apply func(tokens []template.Token)
}

// fixers in execution order. The load-tag renames (static, i18n) run before
// the load merge pass so renamed names participate in dedup and sorting.
var fixers = []fixer{
	{floor: target.Version{Major: 2, Minor: 1}, apply: fixStaticLoads},
	{floor: target.Version{Major: 3, Minor: 1}, apply: fixTranslateTags},
	{floor: target.Version{Major: 3, Minor: 1}, apply: fixIfEqualTags},
	{floor: target.Version{Major: 4, Minor: 1}, apply: fixEmptyJSONScriptID},
	{floor: target.Version{Major: 4, Minor: 2}, apply: fixLengthIs},
}

// applyFixers runs every fixer whose floor the target version meets.
func applyFixers(tokens []template.Token, tv target.Version) {
	for _, f := range fixers {
		if tv.AtLeast(f.floor) {
			f.apply(tokens)
		}
	}
}

// fixStaticLoads rewrites the removed staticfiles and admin_static libraries
// to static inside every load tag, in both the plain and from forms.
func fixStaticLoads(tokens []template.Token) {
	for i, t := range tokens {
		if t.TagName() != "load" {
			continue
		}
		name, args := template.ParseTag(t.Content)
		changed := false
		for j, arg := range args {
			if arg == "staticfiles" || arg == "admin_static" {
				args[j] = "static"
				changed = true
			}
		}
		if changed {
			tokens[i].Content = template.JoinTag(name, args)
		}
	}
}

// translateRenames maps the pre-3.1 i18n tag names to their modern spelling.
var translateRenames = map[string]string{
	"trans":         "translate",
	"blocktrans":    "blocktranslate",
	"endblocktrans": "endblocktranslate",
}

// fixTranslateTags renames trans/blocktrans tags to translate/blocktranslate
// and applies the same renames to imported names in {% load ... from i18n %}.
func fixTranslateTags(tokens []template.Token) {
	for i, t := range tokens {
		name := t.TagName()
		if modern, ok := translateRenames[name]; ok {
			_, args := template.ParseTag(t.Content)
			tokens[i].Content = template.JoinTag(modern, args)
			continue
		}
		if name != "load" {
			continue
		}
		load := parseLoadTag(t)
		if !load.fromForm || load.library != "i18n" {
			continue
		}
		changed := false
		for j, imported := range load.names {
			switch imported {
			case "trans":
				load.names[j] = "translate"
				changed = true
			case "blocktrans":
				load.names[j] = "blocktranslate"
				changed = true
			}
		}
		if changed {
			tokens[i].Content = load.body()
		}
	}
}

// fixIfEqualTags rewrites {% ifequal a b %} / {% ifnotequal a b %} to the
// equivalent {% if %} comparison. Openers and closers are matched with a
// stack over the if family so an opener left alone (wrong arity) keeps its
// original closer.
func fixIfEqualTags(tokens []template.Token) {
	type frame struct {
		name      string
		rewritten bool
	}
	var stack []frame

	for i, t := range tokens {
		name := t.TagName()
		switch name {
		case "if", "ifequal", "ifnotequal":
			f := frame{name: name}
			if name != "if" {
				_, args := template.ParseTag(t.Content)
				if len(args) == 2 {
					op := "=="
					if name == "ifnotequal" {
						op = "!="
					}
					tokens[i].Content = template.JoinTag("if", []string{args[0], op, args[1]})
					f.rewritten = true
				}
			}
			stack = append(stack, f)
		case "endif", "endifequal", "endifnotequal":
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if open.rewritten {
				tokens[i].Content = "endif"
			}
		}
	}
}

// fixEmptyJSONScriptID drops the empty string argument from json_script
// filters in variable filter chains, keeping any non-empty id argument.
func fixEmptyJSONScriptID(tokens []template.Token) {
	for i, t := range tokens {
		if t.Kind != template.Variable {
			continue
		}
		expr := template.ParseExpression(t.Content)
		changed := false
		for j, f := range expr.Filters {
			if f.Name == "json_script" && f.HasArg && (f.Arg == `""` || f.Arg == `''`) {
				expr.Filters[j] = template.Filter{Name: "json_script"}
				changed = true
			}
		}
		if changed {
			tokens[i].Content = expr.String()
		}
	}
}

// fixLengthIs rewrites {% if expr|length_is:n %} to {% if expr|length == n %}.
// The rewrite only applies to a bare single-condition if: one argument whose
// final filter is length_is with an argument. Any extra lexeme (and, or,
// not, a comparison) leaves the tag alone.
func fixLengthIs(tokens []template.Token) {
	for i, t := range tokens {
		if t.TagName() != "if" {
			continue
		}
		_, args := template.ParseTag(t.Content)
		if len(args) != 1 {
			continue
		}
		expr := template.ParseExpression(args[0])
		if len(expr.Filters) == 0 {
			continue
		}
		last := expr.Filters[len(expr.Filters)-1]
		if last.Name != "length_is" || !last.HasArg {
			continue
		}
		expr.Filters[len(expr.Filters)-1] = template.Filter{Name: "length"}
		tokens[i].Content = template.JoinTag("if", []string{expr.String(), "==", last.Arg})
	}
}
