package internal

// captureState says which buffer an open Variable is appending to.
// The transition is one-way: once the eq character switches capture to
// the required value, no further key characters are accepted.
type captureState int

const (
	capturingKey captureState = iota
	capturingRequiredValue
)

// Variable is the leaf component of a template: `{key}`, `{~key}`,
// `{key=value}` or `{~key=value}`. At substitution time the key is
// resolved against the supplied parameters; a missing or empty value,
// or a value that does not exactly match the required value, yields
// ErrUnsatisfied. A muted variable still requires resolution but
// substitutes to an empty string.
type Variable struct {
	span

	state     captureState
	muted     bool
	keyChars  []byte
	reqChars  []byte

	key           string
	requiredValue string
	hasRequired   bool
}

// newVariable opens a Variable at startIndex within its parent's text.
func newVariable(startIndex int) *Variable {
	return &Variable{span: newSpan(startIndex)}
}

// Key returns the variable's name. Empty until the variable is closed.
func (v *Variable) Key() string {
	return v.key
}

// appendChar accepts the next character of the variable body.
// While capturing the required value any character is legal; while
// capturing the key only the mute marker (first position), the eq
// marker and key-safe characters are.
func (v *Variable) appendChar(ch byte) error {
	v.ensureOpen()

	if v.state == capturingRequiredValue {
		v.reqChars = append(v.reqChars, ch)
		return nil
	}

	switch {
	case ch == CharMute:
		return v.mute()
	case ch == CharEq:
		v.state = capturingRequiredValue
		return nil
	case !IsKeySafe(ch):
		return v.syntaxError(ErrMsgCharNotAllowed, ch)
	default:
		v.keyChars = append(v.keyChars, ch)
		return nil
	}
}

// close finalizes the variable: the required value first, then the key.
// The order matters, since an eq marker with no following characters is
// only detectable before the key buffer is consumed.
func (v *Variable) close(endIndex int) error {
	if err := v.setRequiredValue(); err != nil {
		return err
	}
	if err := v.setKey(); err != nil {
		return err
	}
	v.seal(endIndex)
	return nil
}

// substitute resolves the key against params.
func (v *Variable) substitute(params map[string]string) (string, error) {
	if !v.closed() {
		panic(panicMsgSubstituteOpen)
	}

	result := params[v.key]
	if result == "" {
		return "", ErrUnsatisfied
	}
	if v.hasRequired && result != v.requiredValue {
		return "", ErrUnsatisfied
	}
	if v.muted {
		return "", nil
	}
	return result, nil
}

func (v *Variable) setKey() error {
	if len(v.keyChars) == 0 {
		return v.syntaxError(ErrMsgEmptyKey, 0)
	}
	v.key = string(v.keyChars)
	v.keyChars = nil
	return nil
}

func (v *Variable) setRequiredValue() error {
	if len(v.reqChars) == 0 {
		if v.state == capturingRequiredValue {
			return v.syntaxError(ErrMsgEmptyRequiredValue, 0)
		}
		return nil
	}
	v.requiredValue = string(v.reqChars)
	v.hasRequired = true
	v.reqChars = nil
	return nil
}

// mute sets the mute flag. Only legal as the very first character.
func (v *Variable) mute() error {
	if len(v.keyChars) == 0 && !v.muted {
		v.muted = true
		return nil
	}
	return v.syntaxError(ErrMsgMisplacedMute, CharMute)
}

// syntaxError builds a SyntaxError whose text is the variable as
// scanned so far, with the offset pointing at its last character.
func (v *Variable) syntaxError(msg string, ch byte) error {
	text := make([]byte, 0, len(v.keyChars)+3)
	text = append(text, CharVarOpen)
	if v.muted {
		text = append(text, CharMute)
	}
	text = append(text, v.keyChars...)
	if ch != 0 {
		text = append(text, ch)
	}
	return newSyntaxError(msg, string(text), len(text))
}
