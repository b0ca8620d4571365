package promptsub

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Prompt.
type Option func(*promptConfig)

// promptConfig holds the internal configuration for a Prompt.
type promptConfig struct {
	logger           *zap.Logger
	reduceWhitespace bool
}

// defaultPromptConfig returns the default prompt configuration.
func defaultPromptConfig() *promptConfig {
	return &promptConfig{
		logger:           nil,
		reduceWhitespace: true,
	}
}

// WithLogger sets the logger for parse and substitution debug output.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *promptConfig) {
		c.logger = logger
	}
}

// WithWhitespaceReduction toggles the postprocessing step that
// collapses runs of whitespace in substituted output to single spaces
// and trims the ends.
// Default: true
func WithWhitespaceReduction(enabled bool) Option {
	return func(c *promptConfig) {
		c.reduceWhitespace = enabled
	}
}
