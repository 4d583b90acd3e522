package errcodes

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Codes that callers branch on. Every Error carries exactly one of these (or
// a code derived from an echo error).
const (
	CodeNotFound             = "not_found"
	CodeValidation           = "validation_error"
	CodeValidationType       = "validation_type_error"
	CodeUnknownParameter     = "unknown_parameter"
	CodeMalformedPayload     = "malformed_payload"
	CodeEmptyRequestBody     = "empty_request_body"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodePersistenceFailure   = "persistence_failure"
	CodeUnprocessable        = "unprocessable"
	CodeInternal             = "internal_server_error"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	// Form is the submitted payload, echoed back when a form is rejected.
	Form interface{}

	cause error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.cause
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Form = err.Form
	te.cause = err.cause
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// CodeOf returns the discriminating code of err. Errors that aren't an *Error
// are internal errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// WithForm attaches the submitted form to err so the error handler can send it
// back alongside the message. Non-*Error values are returned untouched.
func WithForm(err error, form interface{}) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	withForm := *e
	withForm.Form = form
	return &withForm
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     CodeNotFound,
	}
}

// PersistenceFailure reports a write that was rolled back. The message is
// meant to be shown to the person who submitted the form, e.g. "An error
// occurred. Venue The Musical Hop could not be listed."
func PersistenceFailure(subject, action string, cause error) error {
	return &Error{
		HTTPCode: http.StatusInternalServerError,
		Message:  fmt.Sprintf("An error occurred. %s could not be %s.", subject, action),
		Code:     CodePersistenceFailure,
		cause:    cause,
	}
}

// Unprocessable reports a delete that could not be carried out.
func Unprocessable(resource string, cause error) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  resource + " could not be deleted.",
		Code:     CodeUnprocessable,
		cause:    cause,
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     CodeUnsupportedMediaType,
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     CodeUnknownParameter,
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     CodeValidationType,
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     CodeValidation,
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     CodeMalformedPayload,
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     CodeEmptyRequestBody,
	}
}
