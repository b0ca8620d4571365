// Package promptsub composes natural-language prompts from templates
// with optional sections, variables and fallback alternatives.
//
// A template is parsed once and substituted any number of times with a
// map of parameters:
//
//	prompt, err := promptsub.New("Say hello [to {name}]")
//	result, _ := prompt.Substitute(map[string]any{"name": "John"})
//	// result: "Say hello to John"
//
// # Template Syntax
//
// Optional sections in square brackets substitute to nothing when their
// variables are missing, and sections nest arbitrarily:
//
//	"Answer briefly. [The user's name is {name}.]"
//
// Variables in curly braces resolve against the supplied parameters.
// A variable prefixed with ~ is muted: it must resolve, but its value
// is dropped from the output. A variable with =value only resolves
// when the parameter exactly equals that value:
//
//	"{~logged_in} Welcome back!"
//	"Call me only when it's {weather=hot} outside"
//
// The | separator chains fallback alternatives; the first alternative
// whose own variables all resolve wins:
//
//	"Blue if {var_1} | Red if {var_2}"
//
// A section (or a whole template) whose direct variables cannot all be
// resolved yields its next alternative, or an empty string. Variables
// inside nested sections never fail their enclosing section.
//
// There is no escape mechanism for the special characters
// [ ] { } | ~ =; templates that need them literally in variable keys
// cannot express that.
//
// # Parameters
//
// Substitute accepts string, integer, float and bool parameter values;
// anything else is rejected with a params error. Keys must be strings.
// By default runs of whitespace in the output are collapsed to single
// spaces; disable with WithWhitespaceReduction(false).
//
// # Introspection
//
// Variables reports, per fallback alternative, which variable keys are
// required at the top level and which appear only inside optional
// sections:
//
//	prompt, _ := promptsub.New("{var_1} is needed, [but {var_2} not so much]")
//	prompt.Variables()
//	// [{Required: {var_1}, Optional: {var_2}}]
//
// # Storage
//
// Named prompts can be versioned and persisted through the
// PromptStorage interface, with memory, filesystem and PostgreSQL
// backends, and substituted by name through a Catalog.
package promptsub
