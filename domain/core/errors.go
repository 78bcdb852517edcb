package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidLength  = errors.New("length must be a positive integer")
	ErrEncoding       = errors.New("memorable input is not valid UTF-8")
	ErrUnknownFormula = errors.New("unknown formula")

	// Numeric errors
	ErrNonFiniteValue = errors.New("non-finite intermediate value")

	// Internal consistency errors
	ErrInvariantViolation = errors.New("pipeline invariant violated")
)

// Error constructors with context
func NewInvalidLengthError(length int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidLength, length)
}

func NewNonFiniteError(index int, value float64) error {
	return fmt.Errorf("%w at index %d: %v", ErrNonFiniteValue, index, value)
}

func NewInvariantError(stage string, expected, got int) error {
	return fmt.Errorf("%w: %s produced %d values, expected %d", ErrInvariantViolation, stage, got, expected)
}

func NewUnknownFormulaError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownFormula, name)
}

// Error checking helpers

// IsInputError reports whether err was caused by caller input rather than a defect.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrUnknownFormula)
}

// IsFatalError reports whether err signals a bug in one of the pipeline stages.
func IsFatalError(err error) bool {
	return errors.Is(err, ErrNonFiniteValue) ||
		errors.Is(err, ErrInvariantViolation)
}
