package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an identifier fails the 24-hex codec.
	ErrInvalidID = errors.New("invalid identifier")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound or ErrInvalidID.
// A syntactically invalid identifier can never match a record, so both map
// to the same outcome for callers doing by-id lookups.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID)
}

// StoreError wraps an underlying store failure with the operation that hit it.
// Distinct from ErrNotFound so handlers can answer 500 instead of 404.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is a store failure.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
