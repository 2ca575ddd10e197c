// Package app exposes each rule-set operation as a use case returning the
// Result envelope consumed by the request layer and the CLI.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/timelog/internal/domain"
)

type StatusCode string

const (
	StatusSuccess             StatusCode = "Success"
	StatusBadRequest          StatusCode = "BadRequest"
	StatusNotFound            StatusCode = "NotFound"
	StatusInternalServerError StatusCode = "InternalServerError"
)

// HTTPStatus maps the envelope status onto an HTTP status code.
func (c StatusCode) HTTPStatus() int {
	switch c {
	case StatusSuccess:
		return http.StatusOK
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GenericFailureMessage is all a caller learns about a store failure.
const GenericFailureMessage = "an unexpected error occurred"

// Result is the envelope returned by every use case.
type Result[T any] struct {
	Data       T          `json:"data"`
	StatusCode StatusCode `json:"statusCode"`
	Message    string     `json:"message"`
	IsSuccess  bool       `json:"isSuccess"`
}

func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Data: data, StatusCode: StatusSuccess, Message: message, IsSuccess: true}
}

func Fail[T any](code StatusCode, message string) Result[T] {
	return Result[T]{StatusCode: code, Message: message}
}

// StatusFor classifies err: NotFound rule errors map to NotFound, every other
// rule error to BadRequest, anything else to InternalServerError.
func StatusFor(err error) StatusCode {
	if err == nil {
		return StatusSuccess
	}
	re, ok := domain.AsRuleError(err)
	if !ok {
		return StatusInternalServerError
	}
	if re.Kind == domain.ErrNotFound {
		return StatusNotFound
	}
	return StatusBadRequest
}

// FromError builds a failed envelope. Store failures are logged with their
// detail and surfaced with a generic message.
func FromError[T any](ctx context.Context, logger *slog.Logger, op string, err error) Result[T] {
	code := StatusFor(err)
	if code == StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(ctx, "use case failed", "op", op, "error", err)
		}
		return Fail[T](code, GenericFailureMessage)
	}
	re, _ := domain.AsRuleError(err)
	return Fail[T](code, re.Error())
}

// BadInput wraps a shape-validation failure from the request layer.
func BadInput[T any](err error) Result[T] {
	return Fail[T](StatusBadRequest, err.Error())
}

// Map converts the payload of r, keeping the status fields. The payload of a
// failed result is left at its zero value.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	out := Result[U]{StatusCode: r.StatusCode, Message: r.Message, IsSuccess: r.IsSuccess}
	if r.IsSuccess {
		out.Data = f(r.Data)
	}
	return out
}

// ResultError is a failed Result carried as an error, for callers such as
// the CLI that work in error returns.
type ResultError struct {
	Status  StatusCode
	Message string
}

func (e *ResultError) Error() string {
	return e.Message
}

// Unpack returns the payload, or a *ResultError when r failed.
func (r Result[T]) Unpack() (T, error) {
	if !r.IsSuccess {
		var zero T
		return zero, &ResultError{Status: r.StatusCode, Message: r.Message}
	}
	return r.Data, nil
}

// IsStatus reports whether err is a *ResultError with the given status.
func IsStatus(err error, code StatusCode) bool {
	var re *ResultError
	return errors.As(err, &re) && re.Status == code
}
