package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/nsplv/go-promptsub"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	if _, err := promptsub.New(string(templateSource)); err != nil {
		if promptsub.IsSyntaxError(err) {
			fmt.Fprintf(stderr, FmtSyntaxError, err, promptsub.SyntaxErrorOffset(err))
		} else {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		}
		return ExitCodeValidationError
	}

	fmt.Fprint(stdout, FmtValidOK)
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
