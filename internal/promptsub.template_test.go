package internal

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustParse(t *testing.T, text string) *Template {
	t.Helper()

	tpl, err := Parse(text, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tpl)
	return tpl
}

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		numComponents   int
		numTemplates    int
		numVariables    int
		numAlternatives int
	}{
		{
			name:          "plain text",
			input:         "Hello, World!",
			numComponents: 0,
		},
		{
			name:          "single variable",
			input:         "Hello {name}",
			numComponents: 1,
			numVariables:  1,
		},
		{
			name:          "single nested block",
			input:         "Hello [there]",
			numComponents: 1,
			numTemplates:  1,
		},
		{
			name:          "mixed children",
			input:         "{greeting} [to {name}] again",
			numComponents: 2,
			numTemplates:  1,
			numVariables:  1,
		},
		{
			name:            "fallback alternative",
			input:           "{a} | {b}",
			numComponents:   1,
			numVariables:    1,
			numAlternatives: 1,
		},
		{
			name:            "three way chain",
			input:           "{a} | {b} | fallback",
			numComponents:   1,
			numVariables:    1,
			numAlternatives: 2,
		},
		{
			name:          "deeply nested blocks count once at top",
			input:         "a [b [c [d]]]",
			numComponents: 1,
			numTemplates:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := mustParse(t, tt.input)

			assert.Len(t, tpl.components, tt.numComponents)
			assert.Len(t, tpl.templates, tt.numTemplates)
			assert.Len(t, tpl.variables, tt.numVariables)
			assert.Equal(t, tt.numAlternatives, tpl.alternativeCount())
		})
	}
}

func TestParse_SeparatorTruncatesInputText(t *testing.T) {
	tpl := mustParse(t, "Blue if {var_1} | Red if {var_2}")

	assert.Equal(t, "Blue if {var_1} ", tpl.InputText())
	require.NotNil(t, tpl.alternative)
	assert.Equal(t, " Red if {var_2}", tpl.alternative.InputText())
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedMsg    string
		expectedOffset int
	}{
		{
			name:           "empty input",
			input:          "",
			expectedMsg:    ErrMsgEmptyTemplate,
			expectedOffset: 1,
		},
		{
			name:           "empty nested block",
			input:          "a []",
			expectedMsg:    ErrMsgEmptyTemplate,
			expectedOffset: 1,
		},
		{
			name:           "empty alternative",
			input:          "a |",
			expectedMsg:    ErrMsgEmptyTemplate,
			expectedOffset: 1,
		},
		{
			name:           "empty head before separator",
			input:          "| b",
			expectedMsg:    ErrMsgEmptyTemplate,
			expectedOffset: 1,
		},
		{
			name:           "repeated separators",
			input:          "a || b",
			expectedMsg:    ErrMsgEmptyTemplate,
			expectedOffset: 1,
		},
		{
			name:           "empty variable",
			input:          "{}",
			expectedMsg:    ErrMsgEmptyKey,
			expectedOffset: 1,
		},
		{
			name:           "variable without key",
			input:          "{=value}",
			expectedMsg:    ErrMsgEmptyKey,
			expectedOffset: 1,
		},
		{
			name:           "variable with empty required value",
			input:          "{weather=}",
			expectedMsg:    ErrMsgEmptyRequiredValue,
			expectedOffset: 8,
		},
		{
			name:           "double mute",
			input:          "{~~x}",
			expectedMsg:    ErrMsgMisplacedMute,
			expectedOffset: 3,
		},
		{
			name:           "unclosed variable",
			input:          "{name",
			expectedMsg:    ErrMsgVariableNotClosed,
			expectedOffset: 1,
		},
		{
			name:           "unclosed variable after text",
			input:          "ab{name",
			expectedMsg:    ErrMsgVariableNotClosed,
			expectedOffset: 3,
		},
		{
			name:           "unclosed block",
			input:          "[name",
			expectedMsg:    ErrMsgTemplateNotClosed,
			expectedOffset: 1,
		},
		{
			name:           "unclosed inner block",
			input:          "[a [b]",
			expectedMsg:    ErrMsgTemplateNotClosed,
			expectedOffset: 1,
		},
		{
			name:           "stray block closer",
			input:          "a]b",
			expectedMsg:    ErrMsgWrongCharPosition,
			expectedOffset: 2,
		},
		{
			name:           "stray variable closer",
			input:          "}",
			expectedMsg:    ErrMsgWrongCharPosition,
			expectedOffset: 1,
		},
		{
			name:           "block opener inside variable",
			input:          "{a[b}",
			expectedMsg:    ErrMsgWrongCharPosition,
			expectedOffset: 3,
		},
		{
			name:           "separator inside variable",
			input:          "{a|b}",
			expectedMsg:    ErrMsgWrongCharPosition,
			expectedOffset: 3,
		},
		{
			name:           "variable opener inside variable",
			input:          "{a{b}",
			expectedMsg:    ErrMsgWrongCharPosition,
			expectedOffset: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, nil)

			require.Error(t, err)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.expectedMsg, syntaxErr.Message)
			assert.Equal(t, tt.expectedOffset, syntaxErr.Offset)
			assert.Positive(t, syntaxErr.Offset)
		})
	}
}

func TestTemplate_Substitute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		params   map[string]string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "Hello, World!",
			params:   nil,
			expected: "Hello, World!",
		},
		{
			name:     "single variable",
			input:    "Hello {name}!",
			params:   map[string]string{"name": "John"},
			expected: "Hello John!",
		},
		{
			name:     "missing variable empties the level",
			input:    "Hello {name}!",
			params:   nil,
			expected: "",
		},
		{
			name:     "all or nothing per level",
			input:    "{a} and {b}",
			params:   map[string]string{"a": "1"},
			expected: "",
		},
		{
			name:     "nested block failure stays local",
			input:    "Hello[, {name}]!",
			params:   nil,
			expected: "Hello!",
		},
		{
			name:     "nested block resolves when satisfied",
			input:    "Hello[, {name}]!",
			params:   map[string]string{"name": "John"},
			expected: "Hello, John!",
		},
		{
			name:     "fallback on first alternative",
			input:    "Blue if {var_1} | Red if {var_2}",
			params:   map[string]string{"var_1": "x"},
			expected: "Blue if x ",
		},
		{
			name:     "fallback to second alternative",
			input:    "Blue if {var_1} | Red if {var_2}",
			params:   map[string]string{"var_2": "y"},
			expected: " Red if y",
		},
		{
			name:     "exhausted chain yields empty string",
			input:    "Blue if {var_1} | Red if {var_2}",
			params:   nil,
			expected: "",
		},
		{
			name:     "static final alternative always satisfies",
			input:    "{a} | plan B",
			params:   nil,
			expected: " plan B",
		},
		{
			name:     "muted variable gates without output",
			input:    "Show this {~secret}",
			params:   map[string]string{"secret": "s3cr3t"},
			expected: "Show this ",
		},
		{
			name:     "muted variable still gates",
			input:    "Show this {~secret}",
			params:   nil,
			expected: "",
		},
		{
			name:     "required value match",
			input:    "It is {weather=hot} today",
			params:   map[string]string{"weather": "hot"},
			expected: "It is hot today",
		},
		{
			name:     "required value mismatch",
			input:    "It is {weather=hot} today",
			params:   map[string]string{"weather": "cold"},
			expected: "",
		},
		{
			name:     "multiple variables keep their offsets",
			input:    "A{x}B{y}C",
			params:   map[string]string{"x": "1", "y": "22"},
			expected: "A1B22C",
		},
		{
			name:     "substitution longer than the variable",
			input:    "{x}{x}{x}",
			params:   map[string]string{"x": "longer"},
			expected: "longerlongerlonger",
		},
		{
			name:     "nested alternatives resolve independently",
			input:    "[{a} | {b}] end",
			params:   map[string]string{"b": "B"},
			expected: " B end",
		},
		{
			name:     "deeply nested blocks",
			input:    "[Insane? [- Yes, [but [should [still [be [ok.[.[.[.]]]]]]]]]]",
			params:   nil,
			expected: "Insane? - Yes, but should still be ok....",
		},
		{
			name:     "extra params are ignored",
			input:    "Hi {name}",
			params:   map[string]string{"name": "Jo", "unused": "x"},
			expected: "Hi Jo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := mustParse(t, tt.input)

			assert.Equal(t, tt.expected, tpl.Substitute(tt.params))
		})
	}
}

func TestTemplate_SubstituteIsRepeatable(t *testing.T) {
	tpl := mustParse(t, "Hello[, {name}]! [{greeting}]")

	first := tpl.Substitute(map[string]string{"name": "John"})
	second := tpl.Substitute(map[string]string{"greeting": "hi"})
	third := tpl.Substitute(map[string]string{"name": "John"})

	assert.Equal(t, "Hello, John! ", first)
	assert.Equal(t, "Hello! hi", second)
	assert.Equal(t, first, third)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestTemplate_VariableKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		required [][]string
		optional [][]string
	}{
		{
			name:     "plain text",
			input:    "Hello",
			required: [][]string{{}},
			optional: [][]string{{}},
		},
		{
			name:     "top level variables are required",
			input:    "{a} and {b}",
			required: [][]string{{"a", "b"}},
			optional: [][]string{{}},
		},
		{
			name:     "nested variables are optional",
			input:    "{a} [with {b} [and {c}]]",
			required: [][]string{{"a"}},
			optional: [][]string{{"b", "c"}},
		},
		{
			name:     "one entry per alternative",
			input:    "{a} [with {b}] | {c} | static",
			required: [][]string{{"a"}, {"c"}, {}},
			optional: [][]string{{"b"}, {}, {}},
		},
		{
			name:     "duplicate keys collapse",
			input:    "{a} and {a} [plus {a}]",
			required: [][]string{{"a"}},
			optional: [][]string{{"a"}},
		},
		{
			name:     "muted and valued variables still count",
			input:    "{~a} [{b=hot}]",
			required: [][]string{{"a"}},
			optional: [][]string{{"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := mustParse(t, tt.input)

			keySets := tpl.VariableKeys()
			require.Len(t, keySets, len(tt.required))
			for i, ks := range keySets {
				assert.Equal(t, tt.required[i], sortedKeys(ks.Required), "alternative %d required", i)
				assert.Equal(t, tt.optional[i], sortedKeys(ks.Optional), "alternative %d optional", i)
			}
		})
	}
}
