package clif

import (
	"errors"
	"fmt"
)

// SyntaxError reports a CLIF tokenizing or parsing failure.
//
// Syntax errors are raised before any mutation of the graph under
// construction reaches the caller; a failed parse yields no model.
type SyntaxError struct {
	// Code identifies the error category.
	Code SyntaxErrorCode

	// Message names the syntactic expectation that was violated.
	Message string

	// Form is the special form involved, when the error concerns one.
	Form string
}

// SyntaxErrorCode categorizes syntax errors.
type SyntaxErrorCode string

const (
	// ErrCodeUnbalanced indicates unbalanced parentheses.
	ErrCodeUnbalanced SyntaxErrorCode = "UNBALANCED_PARENS"

	// ErrCodeUnexpectedEOF indicates the input ended mid-expression.
	ErrCodeUnexpectedEOF SyntaxErrorCode = "UNEXPECTED_EOF"

	// ErrCodeBadForm indicates a special form with the wrong argument
	// count or shape.
	ErrCodeBadForm SyntaxErrorCode = "BAD_FORM"
)

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Form != "" {
		return fmt.Sprintf("%s: %s (form=%s)", e.Code, e.Message, e.Form)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSyntaxError reports whether err is (or wraps) a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

func badForm(form, message string) *SyntaxError {
	return &SyntaxError{Code: ErrCodeBadForm, Message: message, Form: form}
}
