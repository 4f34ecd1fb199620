package vcp

import (
	"errors"
	"fmt"
)

// ErrorCode classifies registry failures.
type ErrorCode string

const (
	// CodeNotFound means an identifier resolved to no visible entry.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeInvalidArgument means an identifier or document was malformed,
	// for example a key-shaped string used as an alias.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeIllegalState means an operation is not allowed in the storage's
	// current state, for example replacing an installed fallback.
	CodeIllegalState ErrorCode = "ILLEGAL_STATE"
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
)

// Error is the error type returned by registry operations.
type Error struct {
	Code    ErrorCode
	Op      string
	ID      string
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %s", e.Op, e.ID, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeNotFound:
		return target == ErrNotFound
	case CodeInvalidArgument:
		return target == ErrInvalidArgument
	case CodeIllegalState:
		return target == ErrIllegalState
	}
	return false
}

func notFound(op string, r Ref) *Error {
	return &Error{Code: CodeNotFound, Op: op, ID: r.String(), Message: "no such entry"}
}

func invalidArgument(op, id, msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Op: op, ID: id, Message: msg}
}

func illegalState(op, msg string) *Error {
	return &Error{Code: CodeIllegalState, Op: op, Message: msg}
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument reports whether err is an invalid-argument failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsIllegalState reports whether err is an illegal-state failure.
func IsIllegalState(err error) bool {
	return errors.Is(err, ErrIllegalState)
}
