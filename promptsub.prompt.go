package promptsub

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nsplv/go-promptsub/internal"
)

// Prompt is a parsed template ready for substitution.
//
// A Prompt is immutable after New returns: Substitute and Variables
// only read the parsed tree, so a single Prompt may be shared and
// substituted concurrently without locking.
type Prompt struct {
	source   string
	template *internal.Template
	config   *promptConfig
	logger   *zap.Logger

	varsOnce sync.Once
	vars     []RequiredAndOptional
}

// New parses template source text into a Prompt.
// A malformed template yields a syntax error carrying the offending
// text and its 1-based byte offset as metadata (see SyntaxErrorOffset).
func New(source string, opts ...Option) (*Prompt, error) {
	config := defaultPromptConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	template, err := internal.Parse(source, logger)
	if err != nil {
		var syntaxErr *internal.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, newSyntaxError(syntaxErr)
		}
		return nil, err
	}

	logger.Debug(LogMsgPromptParsed, zap.Int(LogFieldSource, len(source)))

	return &Prompt{
		source:   source,
		template: template,
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew parses template source text and panics on error.
func MustNew(source string, opts ...Option) *Prompt {
	p, err := New(source, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the original template source text.
func (p *Prompt) Source() string {
	return p.source
}

// Substitute inserts parameters into the template.
//
// Values must be strings, integers, floats or bools; anything else
// yields a params error. Substitution itself cannot fail: if any
// required variable is missing, empty or mismatched, the result falls
// back through the alternative chain and may be an empty string.
func (p *Prompt) Substitute(params map[string]any) (string, error) {
	validated, err := validateParams(params)
	if err != nil {
		return "", err
	}

	result := p.template.Substitute(validated)

	if p.config.reduceWhitespace {
		result = reduceWhitespace(result)
	}

	p.logger.Debug(LogMsgPromptSubbed, zap.Int(LogFieldResult, len(result)))
	return result, nil
}

// Variables returns the variable keys used by the template, one entry
// per fallback alternative in source order. The result is computed once
// and cached; callers must not mutate the returned sets.
func (p *Prompt) Variables() []RequiredAndOptional {
	p.varsOnce.Do(func() {
		keySets := p.template.VariableKeys()
		p.vars = make([]RequiredAndOptional, len(keySets))
		for i, ks := range keySets {
			p.vars[i] = RequiredAndOptional{
				Required: StringSet(ks.Required),
				Optional: StringSet(ks.Optional),
			}
		}
	})
	return p.vars
}

// reduceWhitespace collapses runs of whitespace to single spaces and
// trims both ends.
func reduceWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
