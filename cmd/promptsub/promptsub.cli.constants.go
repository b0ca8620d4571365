package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVars     = "vars"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate       = "template"
	FlagData           = "data"
	FlagDataFile       = "data-file"
	FlagOutput         = "output"
	FlagFormat         = "format"
	FlagKeepWhitespace = "keep-whitespace"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// File permissions for output files
const (
	FilePermissions = 0o644
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgParseFailed       = "template parsing failed"
	ErrMsgSubstituteFailed  = "substitution failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// Output format strings
const (
	FmtErrorWithCause  = "Error: %s: %v\n"
	FmtSyntaxError     = "Error: %s (offset %d)\n"
	FmtValidOK         = "OK\n"
	FmtVarsAlternative = "alternative %d:\n"
	FmtVarsRequired    = "  required: %s\n"
	FmtVarsOptional    = "  optional: %s\n"
	FmtVersion         = "promptsub %s\n"
)

// Version is the CLI version string.
const Version = "1.0.0"

// Help text
const (
	HelpMainUsage = `promptsub - prompt template substitution CLI

Usage:

  promptsub <command> [flags]

Commands:

  render     Substitute parameters into a template and print the result
  validate   Check a template for syntax errors
  vars       Show the required and optional variables of a template
  version    Print the CLI version
  help       Show this help

Flags:

  -t, -template <path|->   Template file, or - for stdin
  -d, -data <json>         Parameters as a JSON object
  -f, -data-file <path>    Parameters from a JSON file
  -o, -output <path|->     Output file (default: stdout)
  -F, -format <text|json>  Output format for vars (default: text)
      -keep-whitespace     Skip whitespace reduction in render output

Examples:

  promptsub render -t prompt.txt -d '{"name": "John"}'
  echo "Say hello [to {name}]" | promptsub render -t - -d '{"name": "John"}'
  promptsub validate -t prompt.txt
  promptsub vars -t prompt.txt -F json
`
	FmtUnknownCommand = "Unknown command: %s\n\n"
)
