package server

import (
	"errors"
	"fmt"
)

// ErrAlreadyServed is returned when Serve is called more than once on the
// same Server. A Server is single-use.
var ErrAlreadyServed = errors.New("server already consumed by Serve")

// NotUnicodeError indicates an environment variable held bytes that are
// not valid UTF-8.
type NotUnicodeError struct {
	Var string
}

func (e *NotUnicodeError) Error() string {
	return fmt.Sprintf("environment variable %s was not valid UTF-8", e.Var)
}

// BaseURLEnvError indicates an environment variable was set but did not
// parse as an absolute URL.
type BaseURLEnvError struct {
	Var string
	Raw string
	Err error
}

func (e *BaseURLEnvError) Error() string {
	return fmt.Sprintf("failed to parse the base URL from environment variable %s (was %q): %v", e.Var, e.Raw, e.Err)
}

func (e *BaseURLEnvError) Unwrap() error {
	return e.Err
}

// ListenerError indicates a listener could not be acquired, either inherited
// from a supervisor or freshly bound.
type ListenerError struct {
	Err error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("failed to get a TCP listener: %v", e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// LocalAddrError indicates the bound local address of the listener could
// not be determined.
type LocalAddrError struct {
	Err error
}

func (e *LocalAddrError) Error() string {
	return fmt.Sprintf("failed to get the local address of the listener: %v", e.Err)
}

func (e *LocalAddrError) Unwrap() error {
	return e.Err
}

// ServeError indicates the accept loop failed. It is terminal; the server
// performs no retries.
type ServeError struct {
	Err error
}

func (e *ServeError) Error() string {
	return fmt.Sprintf("failed to serve the application: %v", e.Err)
}

func (e *ServeError) Unwrap() error {
	return e.Err
}
