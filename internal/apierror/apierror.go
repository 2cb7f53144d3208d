// Package apierror defines the typed error kinds used across services and the
// single translation point to HTTP. Services return these values directly;
// handlers never inspect error strings, only the kind.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindBusinessRule
	KindForbidden
)

// Error carries a kind, a human-readable message and, when applicable, the
// identifier of the offending entity.
type Error struct {
	Kind    Kind   `json:"-"`
	Detail  string `json:"detail"`
	Entidad string `json:"entidad,omitempty"`
	ID      string `json:"id,omitempty"`
}

func (e *Error) Error() string {
	if e.Entidad != "" && e.ID != "" {
		return fmt.Sprintf("%s (%s %s)", e.Detail, e.Entidad, e.ID)
	}
	return e.Detail
}

func NotFound(entidad, id string) *Error {
	return &Error{Kind: KindNotFound, Detail: entidad + " no encontrado", Entidad: entidad, ID: id}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func BusinessRule(detail string) *Error {
	return &Error{Kind: KindBusinessRule, Detail: detail}
}

func BusinessRuleID(detail, entidad, id string) *Error {
	return &Error{Kind: KindBusinessRule, Detail: detail, Entidad: entidad, ID: id}
}

func Forbidden(detail string) *Error {
	return &Error{Kind: KindForbidden, Detail: detail}
}

// Status maps an error to its HTTP status code. Business-rule violations are
// client-correctable input errors, so they map to 422 rather than 500.
// Unrecognized errors map to 500.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// APIError is the canonical envelope for all error responses. Internal errors
// are collapsed into a generic detail so stack traces and DB messages never
// reach clients.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps per-field binding failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
