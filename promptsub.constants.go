package promptsub

// Error code constants for categorization
const (
	ErrCodeSyntax = "PROMPTSUB_SYNTAX"
	ErrCodeParams = "PROMPTSUB_PARAMS"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgParamBadValue = "parameter value is not a string, integer, float or bool"
)

// Metadata key constants for error context
const (
	MetaKeyCode   = "code"
	MetaKeyOffset = "offset"
	MetaKeyText   = "text"
	MetaKeyKey    = "key"
)

// Log message constants
const (
	LogMsgPromptParsed    = "prompt parsed"
	LogMsgPromptSubbed    = "prompt substituted"
	LogMsgCatalogSaved    = "prompt saved to catalog"
	LogMsgCatalogReparsed = "stored prompt re-parsed"
)

// Log field name constants
const (
	LogFieldSource  = "source_len"
	LogFieldResult  = "result_len"
	LogFieldName    = "name"
	LogFieldVersion = "version"
)
