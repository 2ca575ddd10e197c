package service

import (
	"errors"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

func isRuleError(err error) bool {
	_, ok := domain.AsRuleError(err)
	return ok
}

// notFoundAs converts a store miss into the given rule error and passes any
// other error through.
func notFoundAs(err error, kind domain.ErrorKind, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewRuleError(kind, format, args...)
	}
	return err
}

// duplicateAs converts a UNIQUE violation that slipped past the pre-check
// into the given rule error.
func duplicateAs(err error, kind domain.ErrorKind, format string, args ...any) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return domain.NewRuleError(kind, format, args...)
	}
	return err
}
