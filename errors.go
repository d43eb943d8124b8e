package sempcfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/sempcfg/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeSpecNotFound      = "spec_not_found"
	CodeMissingIdentifier = "missing_identifier"
	CodeSerialization     = "serialization"
	CodeInvalidShape      = "invalid_shape"
	CodeAlreadyAttached   = "already_attached"
	CodeDetached          = "detached"
)

// Error reports a failure while building, normalising or lowering a
// configuration tree. Every failure is fatal for the operation that raised
// it; partial command lists must be discarded.
type Error struct {
	Code      string // One of the codes listed above.
	SpecPath  string // Spec path of the object involved ("" for the root).
	Attribute string // Attribute or collection name, when relevant.
	Message   string
	Cause     error // Optional: underlying error.
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	// e.g. missing_identifier at /msgVpns/queues (queueName): ...
	fmt.Fprintf(b, "%s at %s", e.Code, displayPath(e.SpecPath))
	if e.Attribute != "" {
		fmt.Fprintf(b, " (%s)", e.Attribute)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by code, so errors.Is(err, ErrMissingIdentifier) holds
// for any missing-identifier failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrSpecNotFound      = &Error{Code: CodeSpecNotFound}
	ErrMissingIdentifier = &Error{Code: CodeMissingIdentifier}
	ErrSerialization     = &Error{Code: CodeSerialization}
	ErrInvalidShape      = &Error{Code: CodeInvalidShape}
	ErrAlreadyAttached   = &Error{Code: CodeAlreadyAttached}
	ErrDetached          = &Error{Code: CodeDetached}
)

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(code, specPath, attribute string, cause error) *Error {
	return &Error{
		Code:      code,
		SpecPath:  specPath,
		Attribute: attribute,
		Message:   i18n.T(code, map[string]string{"path": displayPath(specPath), "attribute": attribute}),
		Cause:     cause,
	}
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
