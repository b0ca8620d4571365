package promptsub

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/nsplv/go-promptsub/internal"
)

// newSyntaxError wraps an internal syntax error into a cuserr error
// carrying the offending text and its 1-based byte offset as metadata.
func newSyntaxError(cause *internal.SyntaxError) error {
	return cuserr.NewValidationError(ErrCodeSyntax, cause.Message).
		WithMetadata(MetaKeyCode, ErrCodeSyntax).
		WithMetadata(MetaKeyOffset, strconv.Itoa(cause.Offset)).
		WithMetadata(MetaKeyText, cause.Text)
}

// newParamsError creates a parameter-type error for the given key.
func newParamsError(msg, key string) error {
	return cuserr.NewValidationError(ErrCodeParams, msg).
		WithMetadata(MetaKeyCode, ErrCodeParams).
		WithMetadata(MetaKeyKey, key)
}

// IsSyntaxError reports whether err is a template syntax error.
func IsSyntaxError(err error) bool {
	return errorHasCode(err, ErrCodeSyntax)
}

// IsParamsError reports whether err is a parameter-type error.
func IsParamsError(err error) bool {
	return errorHasCode(err, ErrCodeParams)
}

// SyntaxErrorOffset returns the 1-based byte offset of a syntax error
// within the text it was scanned from, or 0 if err is not a syntax
// error or carries no offset.
func SyntaxErrorOffset(err error) int {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return 0
	}
	raw, ok := customErr.GetMetadata(MetaKeyOffset)
	if !ok {
		return 0
	}
	offset, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0
	}
	return offset
}

// SyntaxErrorText returns the text the syntax error points into, or ""
// if err is not a syntax error.
func SyntaxErrorText(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	text, _ := customErr.GetMetadata(MetaKeyText)
	return text
}

// errorHasCode checks the error code stored in metadata.
func errorHasCode(err error, code string) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	got, ok := customErr.GetMetadata(MetaKeyCode)
	return ok && got == code
}
