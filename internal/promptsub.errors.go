package internal

import (
	"errors"
	"fmt"
)

// ErrUnsatisfied signals that a variable could not be resolved to a
// non-empty, matching value. It is pure control flow: the owning
// template converts it into its alternative's output or an empty
// string, so it never escapes a substitution call.
var ErrUnsatisfied = errors.New("variable unsatisfied")

// SyntaxError reports malformed template text. Offset is the 1-based
// byte offset of the offending character within Text.
type SyntaxError struct {
	Message string
	Text    string
	Offset  int
}

// Error returns a human-readable description with the offset.
func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s at offset %d in %q", e.Message, e.Offset, e.Text)
	}
	return e.Message
}

// newSyntaxError creates a SyntaxError pointing at the given 1-based offset.
func newSyntaxError(msg, text string, offset int) *SyntaxError {
	return &SyntaxError{Message: msg, Text: text, Offset: offset}
}
