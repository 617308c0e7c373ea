package mesh

import (
	"errors"
	"fmt"
)

// Contract violation kinds. Every failure in the geometry layer wraps exactly
// one of these so callers can classify it with errors.Is.
var (
	ErrInvalidEnumerant       = errors.New("invalid enumerant")
	ErrIncompatibleType       = errors.New("incompatible type")
	ErrImplementationSpecific = errors.New("implementation-specific format misuse")
	ErrLayout                 = errors.New("layout violation")
	ErrContainment            = errors.New("containment violation")
	ErrMutability             = errors.New("mutability violation")
	ErrCardinality            = errors.New("cardinality violation")
)

// ContractError describes a violated precondition.
type ContractError struct {
	Op     string // Operation that detected the violation, e.g. "VertexFormat.Size"
	Kind   error  // One of the Err* kinds above
	Detail string // Human-readable description
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

// Unwrap returns the violation kind.
func (e *ContractError) Unwrap() error {
	return e.Kind
}

// Violation builds a ContractError. Construction paths return it, query
// paths on already-validated values panic with it.
func Violation(op string, kind error, format string, args ...any) *ContractError {
	return &ContractError{
		Op:     op,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
