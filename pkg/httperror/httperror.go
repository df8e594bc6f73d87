package httperror

import (
	"fmt"
	"net/http"
)

// Error is the error value handlers return to the HTTP adapter. Status and
// Code are rendered to the client together with Message and Details.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any

	// err is the underlying cause. It is logged but never rendered.
	err error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// New builds an Error. An error passed as details becomes the cause instead
// of being exposed in the response body.
func New(status int, code, message string, details any) *Error {
	e := &Error{
		Status:  status,
		Code:    code,
		Message: message,
	}

	if cause, ok := details.(error); ok {
		e.err = cause
	} else {
		e.Details = details
	}

	return e
}

func BadRequest(code, message string, details any) *Error {
	return New(http.StatusBadRequest, code, message, details)
}

func NotFound(code, message string, details any) *Error {
	return New(http.StatusNotFound, code, message, details)
}

func UnprocessableEntity(code, message string, details any) *Error {
	return New(http.StatusUnprocessableEntity, code, message, details)
}

func InternalServerError(code, message string, details any) *Error {
	return New(http.StatusInternalServerError, code, message, details)
}

func ServiceUnavailable(code, message string, details any) *Error {
	return New(http.StatusServiceUnavailable, code, message, details)
}
