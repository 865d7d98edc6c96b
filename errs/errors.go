// Package errs defines the error types the rendering pipeline understands:
// app-level errors carrying an HTTP status and optional htmx swap hints, and
// per-field validation errors.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// Error is an app-level error with everything the error middleware needs to
// render it: the HTTP status, the user-facing message, and optional htmx
// swap hints telling the client where the error fragment belongs. Caller
// info is captured at construction for the server log and never serialized.
type Error struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Retarget string `json:"-"`
	Reswap   string `json:"-"`
	FuncName string `json:"-"`
	FileName string `json:"-"`
	InnerErr bool   `json:"-"`
}

// New constructs an app error with the given status code. The message is
// shown to users as-is.
func New(code int, err error) *Error {
	fn, file := caller()

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: fn,
		FileName: file,
	}
}

// NewInternal constructs an app error whose message must not reach users.
// The error middleware logs it and responds with the bare status text.
func NewInternal(err error) *Error {
	fn, file := caller()

	return &Error{
		Code:     http.StatusInternalServerError,
		Message:  err.Error(),
		FuncName: fn,
		FileName: file,
		InnerErr: true,
	}
}

// caller captures the construction site two frames up, so New and
// NewInternal report the handler that built the error.
func caller() (funcName, fileName string) {
	pc, filename, line, _ := runtime.Caller(2)

	return runtime.FuncForPC(pc).Name(), fmt.Sprintf("%s:%d", filename, line)
}

// WithRetarget sets the CSS selector the error fragment should be swapped
// into, overriding the element htmx targeted for the failed request. The
// error middleware forwards it as the HX-Retarget response header.
func (e *Error) WithRetarget(selector string) *Error {
	e.Retarget = selector
	return e
}

// WithReswap sets the swap strategy for the error fragment, forwarded as
// the HX-Reswap response header.
func (e *Error) WithReswap(strategy string) *Error {
	e.Reswap = strategy
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// IsInternal reports whether the message is withheld from users.
func (e *Error) IsInternal() bool {
	return e.InnerErr
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// FieldError reports a validation failure on a single request field. Field
// holds the name the client submitted it under (json or form tag).
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// NewFieldsError creates a fields error.
func NewFieldsError(field string, err error) error {
	return FieldErrors{
		{
			Field: field,
			Err:   err.Error(),
		},
	}
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	d, err := json.Marshal(fe)
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// Fields returns the fields that failed validation
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string)
	for _, fld := range fe {
		m[fld.Field] = fld.Err
	}
	return m
}

// IsFieldErrors checks if an error of type FieldErrors exists.
func IsFieldErrors(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// GetFieldErrors returns a copy of the FieldErrors pointer.
func GetFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	return fe
}
