package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djade-fmt/djade/internal/target"
)

func TestFixStaticLoads(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		expected string
	}{
		{
			"staticfiles renamed",
			"{% load staticfiles %}\n",
			"2.1",
			"{% load static %}\n",
		},
		{
			"admin_static renamed",
			"{% load admin_static %}\n",
			"2.1",
			"{% load static %}\n",
		},
		{
			"rename participates in dedup",
			"{% load staticfiles static %}\n",
			"2.1",
			"{% load static %}\n",
		},
		{
			"below floor untouched",
			"{% load staticfiles %}\n",
			"",
			"{% load staticfiles %}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := target.None
			if tt.target != "" {
				tv = mustTarget(t, tt.target)
			}
			out, _, err := Format([]byte(tt.input), tv)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFixTranslateTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		expected string
	}{
		{
			"trans renamed",
			`{% trans "hello" %}` + "\n",
			"3.1",
			`{% translate "hello" %}` + "\n",
		},
		{
			"blocktrans pair renamed",
			"{% blocktrans %}hi{% endblocktrans %}\n",
			"3.1",
			"{% blocktranslate %}hi{% endblocktranslate %}\n",
		},
		{
			"i18n imports renamed and sorted",
			"{% load blocktrans trans from i18n %}\n",
			"3.1",
			"{% load blocktranslate translate from i18n %}\n",
		},
		{
			"plain load untouched",
			"{% load trans %}\n",
			"3.1",
			"{% load trans %}\n",
		},
		{
			"below floor untouched",
			`{% trans "hello" %}` + "\n",
			"3.0",
			`{% trans "hello" %}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Format([]byte(tt.input), mustTarget(t, tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFixIfEqualTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		expected string
	}{
		{
			"ifequal rewritten",
			"{% ifequal a b %}x{% endifequal %}\n",
			"3.1",
			"{% if a == b %}x{% endif %}\n",
		},
		{
			"ifnotequal rewritten",
			"{% ifnotequal a b %}x{% endifnotequal %}\n",
			"3.1",
			"{% if a != b %}x{% endif %}\n",
		},
		{
			"quoted operand",
			`{% ifequal user.name "admin" %}x{% endifequal %}` + "\n",
			"3.1",
			`{% if user.name == "admin" %}x{% endif %}` + "\n",
		},
		{
			"wrong arity keeps its closer",
			"{% ifequal a %}x{% endifequal %}\n",
			"3.1",
			"{% ifequal a %}x{% endifequal %}\n",
		},
		{
			"nested inside plain if",
			"{% if c %}{% ifequal a b %}x{% endifequal %}{% endif %}\n",
			"3.1",
			"{% if c %}{% if a == b %}x{% endif %}{% endif %}\n",
		},
		{
			"below floor untouched",
			"{% ifequal a b %}x{% endifequal %}\n",
			"3.0",
			"{% ifequal a b %}x{% endifequal %}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Format([]byte(tt.input), mustTarget(t, tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFixEmptyJSONScriptID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		expected string
	}{
		{
			"empty double quoted id dropped",
			`{{ data|json_script:"" }}` + "\n",
			"4.1",
			"{{ data|json_script }}\n",
		},
		{
			"empty single quoted id dropped",
			"{{ data|json_script:'' }}\n",
			"4.1",
			"{{ data|json_script }}\n",
		},
		{
			"non-empty id kept",
			`{{ data|json_script:"config" }}` + "\n",
			"4.1",
			`{{ data|json_script:"config" }}` + "\n",
		},
		{
			"below floor untouched",
			`{{ data|json_script:"" }}` + "\n",
			"3.2",
			`{{ data|json_script:"" }}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Format([]byte(tt.input), mustTarget(t, tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFixLengthIs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   string
		expected string
	}{
		{
			"bare comparison rewritten",
			"{% if xs|length_is:1 %}\n",
			"4.2",
			"{% if xs|length == 1 %}\n",
		},
		{
			"filter chain keeps its prefix",
			"{% if xs|strip|length_is:4 %}\n",
			"4.2",
			"{% if xs|strip|length == 4 %}\n",
		},
		{
			"extra lexemes untouched",
			"{% if xs|length_is:1 and y %}\n",
			"4.2",
			"{% if xs|length_is:1 and y %}\n",
		},
		{
			"not prefix untouched",
			"{% if not xs|length_is:1 %}\n",
			"4.2",
			"{% if not xs|length_is:1 %}\n",
		},
		{
			"length_is mid-chain untouched",
			"{% if xs|length_is:1|yesno %}\n",
			"4.2",
			"{% if xs|length_is:1|yesno %}\n",
		},
		{
			"below floor untouched",
			"{% if xs|length_is:1 %}\n",
			"4.1",
			"{% if xs|length_is:1 %}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Format([]byte(tt.input), mustTarget(t, tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFixerGatingByVersion(t *testing.T) {
	// A newer target enables every older fixer.
	out, _, err := Format([]byte("{% load staticfiles %}\n{% ifequal a b %}x{% endifequal %}\n"), mustTarget(t, "5.1"))
	require.NoError(t, err)
	assert.Equal(t, "{% load static %}\n{% if a == b %}x{% endif %}\n", string(out))
}
