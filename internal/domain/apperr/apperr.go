// Package apperr classifies failures so the HTTP layer can map them to
// status codes without inspecting driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an application error.
type Kind int

const (
	// KindInternal is any failure that was not classified.
	KindInternal Kind = iota
	// KindNotFound means a symbol, sector or price history matched nothing.
	KindNotFound
	// KindValidation means the request was rejected before touching the database.
	KindValidation
	// KindUpstream means the database was unreachable or a query failed.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error carries a Kind, a caller-safe Message and an optional wrapped cause.
// Only Message is ever shown to API clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a storage failure. A nil err yields nil so call sites can
// wrap unconditionally.
func Upstream(msg string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// HTTPStatus maps err to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that may be sent to clients. Upstream and
// unclassified errors are reduced to a generic message.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && (ae.Kind == KindNotFound || ae.Kind == KindValidation) {
		return ae.Message
	}
	return "internal server error"
}
