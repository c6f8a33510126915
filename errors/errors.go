// Package errors provides error handling for bonnet.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Structured details and hints for callers
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Common sentinel errors for the knowledge base.
// Use these with errors.Is() for type-safe error checking.
// Wrap or Mark these to add context while preserving the type.
var (
	// ErrNotFound indicates a token or identifier resolved to nothing
	ErrNotFound = New("not found")

	// ErrAmbiguous indicates a text search yielded more than one candidate
	// under a policy that requires an explicit choice
	ErrAmbiguous = New("ambiguous")

	// ErrDuplicateIdentifier indicates a caller-supplied identifier collides
	// with an existing one in the combined entity/attribute namespace
	ErrDuplicateIdentifier = New("duplicate identifier")

	// ErrValidation indicates a value outside a closed enumeration,
	// such as an unknown attribute type
	ErrValidation = New("validation failed")

	// ErrDanglingReference indicates an edge or attribute referencing a
	// nonexistent entity
	ErrDanglingReference = New("dangling reference")
)

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsAmbiguous checks if an error is or wraps ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return err != nil && Is(err, ErrAmbiguous)
}

// IsDuplicateIdentifier checks if an error is or wraps ErrDuplicateIdentifier.
func IsDuplicateIdentifier(err error) bool {
	return err != nil && Is(err, ErrDuplicateIdentifier)
}

// IsValidation checks if an error is or wraps ErrValidation.
func IsValidation(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsDanglingReference checks if an error is or wraps ErrDanglingReference.
func IsDanglingReference(err error) bool {
	return err != nil && Is(err, ErrDanglingReference)
}

// NewNotFound creates a not-found error with a formatted message.
func NewNotFound(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewDuplicateIdentifier creates a duplicate-identifier error naming the
// colliding identifier.
func NewDuplicateIdentifier(id string) error {
	return Mark(Newf("identifier %q already exists", id), ErrDuplicateIdentifier)
}

// NewDanglingReference creates a dangling-reference error naming the missing
// entity.
func NewDanglingReference(id string) error {
	return Mark(Newf("entity %q does not exist", id), ErrDanglingReference)
}
