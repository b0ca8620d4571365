package internal

import (
	"go.uber.org/zap"
)

// KeySets holds, for a single alternative, the variable keys that are
// required at the template's top level and the keys that only appear
// inside nested optional blocks.
type KeySets struct {
	Required map[string]struct{}
	Optional map[string]struct{}
}

// Template is a block of text that may contain nested Templates,
// Variables and a fallback alternative after a separator. It is the
// root of the parsed tree and also every nested optional block.
//
// Once parsed, a Template is read-only: Substitute and VariableKeys
// never mutate it, so a Template may be shared across goroutines.
type Template struct {
	span

	inputText string

	components  []component
	templates   []*Template
	variables   []*Variable
	alternative *Template

	logger *zap.Logger
}

// Parse parses template source text into a Template tree.
// The returned error, if any, is a *SyntaxError.
func Parse(text string, logger *zap.Logger) (*Template, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParseStart, zap.Int(LogFieldLength, len(text)))

	t := &Template{
		span:      newSpan(indexUnset),
		inputText: text,
		logger:    logger,
	}
	if err := t.parse(); err != nil {
		return nil, err
	}

	logger.Debug(LogMsgParseComplete,
		zap.Int(LogFieldComponents, len(t.components)),
		zap.Int(LogFieldAlternatives, t.alternativeCount()),
	)
	return t, nil
}

// newNestedTemplate opens a nested Template at startIndex within its
// parent's text. Its content is captured raw and parsed on close.
func newNestedTemplate(startIndex int, logger *zap.Logger) *Template {
	return &Template{span: newSpan(startIndex), logger: logger}
}

// InputText returns the template's own text, truncated at its
// separator if it has an alternative.
func (t *Template) InputText() string {
	return t.inputText
}

// appendChar buffers one raw character of a still-open nested template.
// Content is opaque to the parent scanner until the matching close.
func (t *Template) appendChar(ch byte) error {
	t.appendPending(ch)
	return nil
}

// close seals a nested template and structurally parses its captured text.
func (t *Template) close(endIndex int) error {
	t.ensureOpen()
	t.inputText = string(t.pending)
	if err := t.parse(); err != nil {
		return err
	}
	t.seal(endIndex)
	return nil
}

// parse scans inputText left to right, building components, direct
// variables and the alternative. At most one child component is open at
// a time; nested same-kind block delimiters are only counted, since a
// nested template's content is re-parsed recursively once it closes.
func (t *Template) parse() error {
	text := t.inputText

	var current component
	depth := 0

	closeAndSave := func(endIndex int) error {
		if err := current.close(endIndex); err != nil {
			return err
		}
		t.components = append(t.components, current)
		switch c := current.(type) {
		case *Template:
			t.templates = append(t.templates, c)
		case *Variable:
			t.variables = append(t.variables, c)
		}
		current = nil
		return nil
	}

scan:
	for i := 0; i < len(text); i++ {
		ch := text[i]

		if !isSpecial(ch) {
			if current != nil {
				if err := current.appendChar(ch); err != nil {
					return err
				}
			}
			continue
		}

		openTemplate, isOpenTemplate := current.(*Template)
		_, isOpenVariable := current.(*Variable)

		switch {
		case ch == CharBlockOpen && current == nil:
			current = newNestedTemplate(i, t.logger)
			depth = 0

		case ch == CharBlockOpen && isOpenTemplate:
			depth++
			openTemplate.appendPending(ch)

		case ch == CharBlockClose && isOpenTemplate:
			if depth > 0 {
				depth--
				openTemplate.appendPending(ch)
				continue
			}
			if err := closeAndSave(i + 1); err != nil {
				return err
			}

		case isOpenTemplate:
			// Separators and variable delimiters inside an open
			// nested template are raw content for its own parse.
			openTemplate.appendPending(ch)

		case ch == CharVarOpen && current == nil:
			current = newVariable(i)

		case ch == CharVarClose && isOpenVariable:
			if err := closeAndSave(i + 1); err != nil {
				return err
			}

		case ch == CharSeparator && current == nil:
			alt := &Template{
				span:      newSpan(indexUnset),
				inputText: text[i+1:],
				logger:    t.logger,
			}
			if err := alt.parse(); err != nil {
				return err
			}
			t.alternative = alt
			t.inputText = text[:i]
			break scan

		default:
			// Block delimiters or a separator inside a variable,
			// or a closer with nothing open.
			return newSyntaxError(ErrMsgWrongCharPosition, text, i+1)
		}
	}

	// Checked after the scan so repeated separators are caught too.
	if t.inputText == "" {
		return newSyntaxError(ErrMsgEmptyTemplate, text, 1)
	}

	if current != nil {
		start, _ := current.bounds()
		msg := ErrMsgTemplateNotClosed
		if _, ok := current.(*Variable); ok {
			msg = ErrMsgVariableNotClosed
		}
		return newSyntaxError(msg, text, start+1)
	}

	return nil
}

// Substitute resolves the template against params.
//
// All direct variables are substituted first, left to right. If any of
// them is unsatisfied, the alternative's result is returned instead, or
// an empty string when there is no alternative. Satisfaction is
// all-or-nothing per template level; nested templates resolve
// independently and never propagate failure upward.
func (t *Template) Substitute(params map[string]string) string {
	varSubs := make([]string, 0, len(t.variables))
	for _, v := range t.variables {
		sub, err := v.substitute(params)
		if err != nil {
			if t.alternative != nil {
				return t.alternative.Substitute(params)
			}
			return ""
		}
		varSubs = append(varSubs, sub)
	}
	return t.reconstruct(params, varSubs)
}

// substitute adapts Substitute to the component contract.
func (t *Template) substitute(params map[string]string) (string, error) {
	return t.Substitute(params), nil
}

// reconstruct rebuilds the template's text with every child replaced by
// its substitution. Children are processed strictly right to left:
// replacements change the string's length, but a replacement never
// touches anything left of its own start offset, so the recorded spans
// of all not-yet-processed children stay valid.
func (t *Template) reconstruct(params map[string]string, varSubs []string) string {
	text := t.inputText

	for i := len(t.components) - 1; i >= 0; i-- {
		child := t.components[i]

		var sub string
		switch c := child.(type) {
		case *Template:
			sub = c.Substitute(params)
		case *Variable:
			sub = varSubs[len(varSubs)-1]
			varSubs = varSubs[:len(varSubs)-1]
		}

		start, end := child.bounds()
		text = text[:start] + sub + text[end:]
	}

	return text
}

// VariableKeys returns one KeySets per alternative, in chain order.
//
// Required keys come from the single top level of each alternative.
// Optional keys are gathered recursively from both the required and
// optional sets of nested templates: a variable that is not required at
// the top level is optional here no matter how deeply it is nested or
// whether its own nested level requires it.
func (t *Template) VariableKeys() []KeySets {
	required := make(map[string]struct{}, len(t.variables))
	for _, v := range t.variables {
		required[v.Key()] = struct{}{}
	}

	optional := make(map[string]struct{})
	for _, child := range t.templates {
		for _, ks := range child.VariableKeys() {
			for k := range ks.Required {
				optional[k] = struct{}{}
			}
			for k := range ks.Optional {
				optional[k] = struct{}{}
			}
		}
	}

	result := []KeySets{{Required: required, Optional: optional}}
	if t.alternative != nil {
		result = append(result, t.alternative.VariableKeys()...)
	}
	return result
}

// alternativeCount returns the number of fallback alternatives chained
// after this template.
func (t *Template) alternativeCount() int {
	n := 0
	for alt := t.alternative; alt != nil; alt = alt.alternative {
		n++
	}
	return n
}
