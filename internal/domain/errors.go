package domain

import (
	"errors"
	"fmt"
)

// ErrorKind names a business-rule violation.
type ErrorKind string

const (
	ErrDuplicateCode    ErrorKind = "DUPLICATE_CODE"
	ErrDuplicateName    ErrorKind = "DUPLICATE_NAME"
	ErrProjectNotFound  ErrorKind = "PROJECT_NOT_FOUND"
	ErrTaskNotFound     ErrorKind = "TASK_NOT_FOUND"
	ErrTaskInactive     ErrorKind = "TASK_INACTIVE"
	ErrDailyCapExceeded ErrorKind = "DAILY_CAP_EXCEEDED"
	ErrHasDependents    ErrorKind = "HAS_DEPENDENTS"
	ErrNotFound         ErrorKind = "NOT_FOUND"
)

// RuleError is returned by the rule sets when an operation is rejected.
// Rejections are detected before any write.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewRuleError(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError unwraps err to a *RuleError if it carries one.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsKind reports whether err is a rule error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	re, ok := AsRuleError(err)
	return ok && re.Kind == kind
}
