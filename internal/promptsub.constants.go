package internal

// Special characters of the promptsub grammar.
// `[` and `]` delimit an optional block, `|` separates fallback
// alternatives, `{` and `}` delimit a variable, `~` mutes a variable
// and `=` introduces its required value.
const (
	CharBlockOpen  = '['
	CharBlockClose = ']'
	CharSeparator  = '|'
	CharVarOpen    = '{'
	CharVarClose   = '}'
	CharMute       = '~'
	CharEq         = '='
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgWrongCharPosition  = "wrong special character position"
	ErrMsgCharNotAllowed     = "character not allowed in variable key"
	ErrMsgEmptyKey           = "variable key can not be empty"
	ErrMsgEmptyRequiredValue = "required value can not be empty"
	ErrMsgMisplacedMute      = "a mute symbol is only allowed in the beginning"
	ErrMsgEmptyTemplate      = "a template can not be empty"
	ErrMsgVariableNotClosed  = "variable not closed"
	ErrMsgTemplateNotClosed  = "template not closed"
)

// Panic messages for invariant violations. These indicate a bug in the
// parser state machine, never a caller mistake.
const (
	panicMsgAppendBeforeStart = "promptsub internal: append before start index is set"
	panicMsgAppendAfterClose  = "promptsub internal: append after end index is set"
	panicMsgCloseTwice        = "promptsub internal: component closed twice"
	panicMsgSubstituteOpen    = "promptsub internal: substitute before component is closed"
)

// Log message constants
const (
	LogMsgParseStart    = "parsing template"
	LogMsgParseComplete = "template parsed"
)

// Log field name constants
const (
	LogFieldLength       = "length"
	LogFieldComponents   = "components"
	LogFieldAlternatives = "alternatives"
)

// indexUnset marks a start or end index that has not been assigned yet.
const indexUnset = -1

// IsKeySafe reports whether ch may appear in a variable key.
// Keys are restricted to ASCII letters, digits and underscore.
func IsKeySafe(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}

// isSpecial reports whether ch is one of the grammar's structural
// characters checked by the block scanner. Mute and eq are handled
// inside Variable and are plain text outside of one.
func isSpecial(ch byte) bool {
	switch ch {
	case CharBlockOpen, CharBlockClose, CharSeparator, CharVarOpen, CharVarClose:
		return true
	}
	return false
}
