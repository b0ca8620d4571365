package promptsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ValidTemplates(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain text", input: "Hello, World!"},
		{name: "variable", input: "Hello {name}"},
		{name: "optional section", input: "Hello [there {name}]"},
		{name: "alternative chain", input: "{a} | {b} | fallback"},
		{name: "muted variable", input: "{~gate}"},
		{name: "required value", input: "{weather=hot}"},
		{name: "deep nesting", input: "[a [b [c [d [e]]]]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := New(tt.input)

			require.NoError(t, err)
			require.NotNil(t, prompt)
			assert.Equal(t, tt.input, prompt.Source())
		})
	}
}

func TestNew_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "empty block", input: "[]"},
		{name: "empty variable", input: "{}"},
		{name: "variable without key", input: "{=value}"},
		{name: "double mute", input: "{~~x}"},
		{name: "unclosed variable", input: "{"},
		{name: "unclosed block", input: "["},
		{name: "stray closer", input: "}"},
		{name: "empty alternative", input: "a |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := New(tt.input)

			require.Error(t, err)
			assert.Nil(t, prompt)
			assert.True(t, IsSyntaxError(err))
			assert.False(t, IsParamsError(err))
			assert.Positive(t, SyntaxErrorOffset(err))
		})
	}
}

func TestMustNew(t *testing.T) {
	assert.NotPanics(t, func() {
		MustNew("Hello {name}")
	})
	assert.Panics(t, func() {
		MustNew("{broken")
	})
}

func TestPrompt_Substitute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		params   map[string]any
		expected string
	}{
		{
			name:     "basic substitution",
			input:    "Hello {name}!",
			params:   map[string]any{"name": "John"},
			expected: "Hello John!",
		},
		{
			name:     "nil params leave only static text",
			input:    "Hello[, {name}]!",
			params:   nil,
			expected: "Hello!",
		},
		{
			name:     "all or nothing",
			input:    "{a} and {b}",
			params:   map[string]any{"a": "1"},
			expected: "",
		},
		{
			name:     "fallback chain",
			input:    "Blue if {var_1} | Red if {var_2}",
			params:   map[string]any{"var_2": "y"},
			expected: "Red if y",
		},
		{
			name:     "muted variable",
			input:    "Show this {~secret}",
			params:   map[string]any{"secret": "s3cr3t"},
			expected: "Show this",
		},
		{
			name:     "required value gate",
			input:    "Bring an umbrella [if it is {weather=rainy}]",
			params:   map[string]any{"weather": "sunny"},
			expected: "Bring an umbrella",
		},
		{
			name:     "integer coercion",
			input:    "Retry {count} times",
			params:   map[string]any{"count": 3},
			expected: "Retry 3 times",
		},
		{
			name:     "bool coercion",
			input:    "Verbose: {verbose}",
			params:   map[string]any{"verbose": true},
			expected: "Verbose: true",
		},
		{
			name:     "float coercion",
			input:    "Temperature {temp}",
			params:   map[string]any{"temp": 0.5},
			expected: "Temperature 0.5",
		},
		{
			name:     "required value with coerced bool",
			input:    "debug on {debug=true}",
			params:   map[string]any{"debug": true},
			expected: "debug on true",
		},
		{
			name:     "whitespace reduction collapses runs",
			input:    "Hello   {name}  \n\t end",
			params:   map[string]any{"name": "John"},
			expected: "Hello John end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := MustNew(tt.input)

			result, err := prompt.Substitute(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPrompt_SubstituteKeepsWhitespaceWhenDisabled(t *testing.T) {
	prompt := MustNew("Hello   {name}  end", WithWhitespaceReduction(false))

	result, err := prompt.Substitute(map[string]any{"name": "John"})
	require.NoError(t, err)
	assert.Equal(t, "Hello   John  end", result)
}

func TestPrompt_SubstituteParamsError(t *testing.T) {
	prompt := MustNew("Hello {name}")

	result, err := prompt.Substitute(map[string]any{"name": []string{"no"}})
	require.Error(t, err)
	assert.Empty(t, result)
	assert.True(t, IsParamsError(err))
	assert.False(t, IsSyntaxError(err))
}

func TestPrompt_Variables(t *testing.T) {
	prompt := MustNew("{a} [with {b} [and {c}]] | {d} | static")

	variables := prompt.Variables()
	require.Len(t, variables, 3)

	assert.Equal(t, []string{"a"}, variables[0].Required.Values())
	assert.Equal(t, []string{"b", "c"}, variables[0].Optional.Values())
	assert.Equal(t, []string{"d"}, variables[1].Required.Values())
	assert.Empty(t, variables[1].Optional.Values())
	assert.Empty(t, variables[2].Required.Values())
	assert.Empty(t, variables[2].Optional.Values())
}

func TestPrompt_VariablesIsCached(t *testing.T) {
	prompt := MustNew("{a} [with {b}]")

	first := prompt.Variables()
	second := prompt.Variables()

	require.Len(t, first, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestPrompt_WithLogger(t *testing.T) {
	prompt, err := New("Hello {name}", WithLogger(zap.NewNop()))
	require.NoError(t, err)

	result, err := prompt.Substitute(map[string]any{"name": "John"})
	require.NoError(t, err)
	assert.Equal(t, "Hello John", result)
}

func TestPrompt_ConcurrentSubstitute(t *testing.T) {
	prompt := MustNew("Hello[, {name}]! [{greeting}]")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				result, err := prompt.Substitute(map[string]any{"name": "John"})
				assert.NoError(t, err)
				assert.Equal(t, "Hello, John!", result)
				_ = prompt.Variables()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
