package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nsplv/go-promptsub"
)

// varsConfig holds parsed vars command configuration
type varsConfig struct {
	templatePath string
	format       string
}

// varsReport is the JSON shape of one alternative's variable sets.
type varsReport struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

func runVars(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseVarsFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	prompt, err := promptsub.New(string(templateSource))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		return ExitCodeValidationError
	}

	variables := prompt.Variables()

	switch cfg.format {
	case OutputFormatText:
		for i, keys := range variables {
			fmt.Fprintf(stdout, FmtVarsAlternative, i)
			fmt.Fprintf(stdout, FmtVarsRequired, strings.Join(keys.Required.Values(), ", "))
			fmt.Fprintf(stdout, FmtVarsOptional, strings.Join(keys.Optional.Values(), ", "))
		}
	case OutputFormatJSON:
		reports := make([]varsReport, 0, len(variables))
		for _, keys := range variables {
			reports = append(reports, varsReport{
				Required: keys.Required.Values(),
				Optional: keys.Optional.Values(),
			})
		}
		encoded, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		fmt.Fprintln(stdout, string(encoded))
	default:
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, errors.New(cfg.format))
		return ExitCodeUsageError
	}

	return ExitCodeSuccess
}

func parseVarsFlags(args []string) (*varsConfig, error) {
	fs := flag.NewFlagSet(CmdNameVars, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &varsConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
