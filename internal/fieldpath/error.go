package fieldpath

import (
	"errors"
	"fmt"
)

// Kind is one of the error kinds named by spec.md §4.C/§7. It is not a Go
// type hierarchy -- every failure is an *Error tagged with a Kind -- so
// callers switch on Kind rather than type-asserting.
type Kind string

const (
	Custom                Kind = "Custom"
	InvalidNumberOfItems  Kind = "InvalidNumberOfItems"
	MissingField          Kind = "MissingField"
	DuplicateField        Kind = "DuplicateField"
	UnknownVariant        Kind = "UnknownVariant"
	IncompatibleType      Kind = "IncompatibleType"
	ParseError            Kind = "ParseError"
	UnexpectedEvent       Kind = "UnexpectedEvent"
	NonMonotonicOffsets   Kind = "NonMonotonicOffsets"
	LengthMismatch        Kind = "LengthMismatch"
	IndexOutOfRange       Kind = "IndexOutOfRange"
	InconsistentTypes     Kind = "InconsistentTypes"
	TooDeeplyNested       Kind = "TooDeeplyNested"
)

// Error carries a Kind plus the field path / data_type annotations of
// spec.md §4.C. Annotations are filled in innermost-first: a wrapper only
// sets an annotation that is still empty, so the failing component's own
// context always wins over its ancestors'.
type Error struct {
	Kind     Kind
	Message  string
	Field    string
	DataType string
	Wrapped  error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Wrapped != nil {
		msg = e.Wrapped.Error()
	}
	s := fmt.Sprintf("%s: %s", e.Kind, msg)
	if e.Field != "" {
		s += fmt.Sprintf(" (field: %s)", e.Field)
	}
	if e.DataType != "" {
		s += fmt.Sprintf(" (data_type: %s)", e.DataType)
	}
	return s
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New creates a fresh annotated error of the given Kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap turns an arbitrary error into an *Error of Kind Custom, or returns it
// unchanged if it already is one.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: Custom, Message: err.Error(), Wrapped: err}
}

// Annotate is the `ctx()` wrapper of spec.md §4.C: it attaches field/data_type
// context to err without overwriting annotations already set by a deeper
// call. Returns nil if err is nil.
func Annotate(err error, field, dataType string) error {
	if err == nil {
		return nil
	}
	e := Wrap(err)
	if e.Field == "" {
		e.Field = field
	}
	if e.DataType == "" {
		e.DataType = dataType
	}
	return e
}
