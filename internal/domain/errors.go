package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported in envelopes and logs.
const (
	KindInvalidInput   = "InvalidInput"
	KindNotFound       = "NotFound"
	KindInvalidState   = "InvalidState"
	KindStorageFailure = "StorageFailure"
)

// NotFoundError reports a missing package, booking or trip representative.
type NotFoundError struct {
	Resource string
	ID       string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// StateError is returned when the current status forbids the operation.
type StateError struct {
	Resource string
	ID       string
	Status   string
	Msg      string
	Err      error
}

func (e StateError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "" && e.Status != "":
		return fmt.Sprintf("%s '%s' is %s", e.Resource, e.ID, e.Status)
	case e.Resource != "":
		return fmt.Sprintf("%s in invalid state", e.Resource)
	default:
		return "invalid state"
	}
}

func (e StateError) Unwrap() error { return e.Err }

// StorageError wraps any failure of the durable store.
type StorageError struct {
	Msg string
	Err error
}

func (e StorageError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "storage failure"
	}
}

func (e StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target StateError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}

// Kind names the taxonomy bucket of err. Untyped errors count as storage failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return KindInvalidInput
	case IsNotFound(err):
		return KindNotFound
	case IsState(err):
		return KindInvalidState
	default:
		return KindStorageFailure
	}
}
