package editor

import (
	"errors"
	"fmt"

	"github.com/roach88/peirce/internal/eg"
)

// StructuralError reports malformed API usage: a missing or wrong-kind
// parent, an unknown entity, or an out-of-range hook number.
//
// Structural errors are raised before any mutation; the model is left
// untouched.
type StructuralError struct {
	// Code identifies the error category.
	Code StructuralErrorCode

	// Message is a human-readable description.
	Message string

	// Entity identifies the offending entity, when known.
	Entity eg.ID
}

// StructuralErrorCode categorizes structural errors.
type StructuralErrorCode string

const (
	// ErrCodeMissingEntity indicates a referenced entity does not exist.
	ErrCodeMissingEntity StructuralErrorCode = "MISSING_ENTITY"

	// ErrCodeNotAContext indicates the referenced entity is not a context.
	ErrCodeNotAContext StructuralErrorCode = "NOT_A_CONTEXT"

	// ErrCodeNotAPredicate indicates the referenced entity is not a
	// predicate.
	ErrCodeNotAPredicate StructuralErrorCode = "NOT_A_PREDICATE"

	// ErrCodeBadHook indicates a hook number outside 1..arity.
	ErrCodeBadHook StructuralErrorCode = "BAD_HOOK"

	// ErrCodeBadArity indicates an arity the predicate kind cannot carry.
	ErrCodeBadArity StructuralErrorCode = "BAD_ARITY"

	// ErrCodeDetachedSelection indicates a selection member with no
	// containing context.
	ErrCodeDetachedSelection StructuralErrorCode = "DETACHED_SELECTION"
)

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (entity=%s)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStructuralError reports whether err is (or wraps) a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// ValidationError reports that a named Peirce-rule precondition failed.
// The rule name is always set so callers can tell which transformation was
// rejected.
type ValidationError struct {
	// Rule names the transformation rule whose precondition failed.
	Rule Rule

	// Message describes the violated precondition.
	Message string
}

// Rule identifies a Peirce transformation rule.
type Rule string

const (
	RuleInsertion        Rule = "insertion"
	RuleErasure          Rule = "erasure"
	RuleIteration        Rule = "iteration"
	RuleDeiteration      Rule = "deiteration"
	RuleDoubleCut        Rule = "double-cut"
	RuleFunctionalProp   Rule = "functional-property"
	RuleConstantIdentity Rule = "constant-identity"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRuleError reports whether err is a ValidationError for the given rule.
func IsRuleError(err error, rule Rule) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Rule == rule
	}
	return false
}

func missingEntity(id eg.ID) *StructuralError {
	return &StructuralError{
		Code:    ErrCodeMissingEntity,
		Message: "entity not found",
		Entity:  id,
	}
}

func notAContext(id eg.ID) *StructuralError {
	return &StructuralError{
		Code:    ErrCodeNotAContext,
		Message: "entity is not a context",
		Entity:  id,
	}
}

func notAPredicate(id eg.ID) *StructuralError {
	return &StructuralError{
		Code:    ErrCodeNotAPredicate,
		Message: "entity is not a predicate",
		Entity:  id,
	}
}

func badHook(id eg.ID, hook, arity int) *StructuralError {
	return &StructuralError{
		Code:    ErrCodeBadHook,
		Message: fmt.Sprintf("hook %d outside 1..%d", hook, arity),
		Entity:  id,
	}
}

func ruleError(rule Rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}
