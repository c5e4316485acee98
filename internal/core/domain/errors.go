package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown resource type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedFormat indicates a render or parse format that is not enabled.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Projection Errors.

	// ErrInvalidInclude indicates the caller asked to include a relationship
	// that is not declared or not includable. It is a client error.
	ErrInvalidInclude = errors.New("invalid include path")

	// ErrDataIntegrity indicates stored data contradicts the schema,
	// e.g. a discriminator with no declared subtype. It is a server error.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrComputation indicates a computed field or relationship resolver failed.
	ErrComputation = errors.New("computed field failed")
)

// IncludeError reports include paths that could not be honoured.
// The projection still produces primary data for everything else.
type IncludeError struct {
	// Paths are the offending dotted paths, as supplied by the caller.
	Paths []string
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInclude, strings.Join(e.Paths, ", "))
}

// Unwrap lets errors.Is match ErrInvalidInclude.
func (e *IncludeError) Unwrap() error {
	return ErrInvalidInclude
}

// DiscriminatorError reports a polymorphic record whose discriminator
// does not match any declared subtype.
type DiscriminatorError struct {
	Type          string
	ID            string
	Discriminator string
}

func (e *DiscriminatorError) Error() string {
	return fmt.Sprintf("%s: %s %q has unknown discriminator %q",
		ErrDataIntegrity, e.Type, e.ID, e.Discriminator)
}

// Unwrap lets errors.Is match ErrDataIntegrity.
func (e *DiscriminatorError) Unwrap() error {
	return ErrDataIntegrity
}

// ComputeError wraps the failure of a computed field or relationship resolver.
type ComputeError struct {
	Type  string
	ID    string
	Field string
	Err   error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("%s: %s %q field %q: %v", ErrComputation, e.Type, e.ID, e.Field, e.Err)
}

// Unwrap exposes both ErrComputation and the underlying cause.
func (e *ComputeError) Unwrap() []error {
	return []error{ErrComputation, e.Err}
}
