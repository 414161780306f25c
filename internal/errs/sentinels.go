// Package errs contains sentinel errors shared by the store, birthday and HTTP layers.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is the family of all caller errors. Nothing has been mutated when an error
	// of this family is returned.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrValidation indicates missing or mutually inconsistent request fields.
	ErrValidation = fmt.Errorf("%w: validation failed", ErrInvalidRequest)

	// ErrOwnershipMismatch indicates that account, contact and author are not linked.
	ErrOwnershipMismatch = fmt.Errorf("%w: ownership mismatch", ErrInvalidRequest)

	// ErrStorage indicates a persistence fault. The transaction has been rolled back.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
)
