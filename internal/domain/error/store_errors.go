package error

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks transient failures of the ledger store.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

// StoreError wraps an infrastructure failure raised while reading or writing the store.
// It is propagated to the caller and never retried by the use cases.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStoreUnavailable) match any StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// Code returns the error code reported to API clients.
func (e *StoreError) Code() LedgerErrorCode {
	return ErrCodeStoreUnavailable
}

// NewStoreError wraps err as a StoreError for the named operation.
// A nil err yields nil; an err that already is a StoreError is returned unchanged.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
