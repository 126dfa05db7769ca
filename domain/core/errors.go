package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientData reports a sample too small for the requested
	// statistic or correction (e.g. n < 2 for sample variance).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrShapeMismatch reports paired or grouped inputs of unequal length
	// or incompatible dimensionality.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidValue reports a non-finite or missing observation where
	// none is permitted.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnsupportedAlgorithm reports an unknown algorithm or method name.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUndefinedResult reports a mathematically undefined output, such as
	// a correlation over a zero-variance sample.
	ErrUndefinedResult = errors.New("undefined result")

	// ErrLookupMiss reports a critical-value key outside tabulated coverage.
	ErrLookupMiss = errors.New("critical value not tabulated")
)

// Error constructors with context

func NewInsufficientDataError(what string, n, min int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least %d", ErrInsufficientData, what, n, min)
}

func NewShapeMismatchError(what string, n1, n2 int) error {
	return fmt.Errorf("%w: %s lengths %d and %d differ", ErrShapeMismatch, what, n1, n2)
}

func NewInvalidValueError(what string, index int, value float64) error {
	return fmt.Errorf("%w: %s[%d] = %v is not finite", ErrInvalidValue, what, index, value)
}

func NewUnsupportedAlgorithmError(kind, name string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrUnsupportedAlgorithm, kind, name)
}

func NewUndefinedResultError(reason string) error {
	return fmt.Errorf("%w: %s", ErrUndefinedResult, reason)
}

func NewLookupMissError(family, key string) error {
	return fmt.Errorf("%w: %s table has no entry for %s", ErrLookupMiss, family, key)
}

// Error checking helpers

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsShapeMismatchError(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

func IsInvalidValueError(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

func IsLookupMissError(err error) bool {
	return errors.Is(err, ErrLookupMiss)
}

// IsInputError reports whether the error is recoverable by fixing the
// caller's input rather than choosing another algorithm or table.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidValue)
}
