package errors

import (
	stderrors "errors"
	"fmt"

	"ecpass/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if err wraps an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidLength      = "INVALID_LENGTH"
	CodeEncodingError      = "ENCODING_ERROR"
	CodeUnknownFormula     = "UNKNOWN_FORMULA"
	CodeNonFiniteValue     = "NON_FINITE_VALUE"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeWriteFailed        = "WRITE_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// FromDomain classifies a pipeline error for a front end. nil stays nil.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	code := CodeInternalError
	message := "password generation failed"
	switch {
	case stderrors.Is(err, core.ErrInvalidLength):
		code, message = CodeInvalidLength, "invalid length"
	case stderrors.Is(err, core.ErrEncoding):
		code, message = CodeEncodingError, "invalid memorable input"
	case stderrors.Is(err, core.ErrUnknownFormula):
		code, message = CodeUnknownFormula, "invalid formula"
	case stderrors.Is(err, core.ErrNonFiniteValue):
		code = CodeNonFiniteValue
	case stderrors.Is(err, core.ErrInvariantViolation):
		code = CodeInvariantViolation
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// IsClientError reports whether the code describes bad caller input
func IsClientError(code string) bool {
	switch code {
	case CodeInvalidInput, CodeInvalidLength, CodeEncodingError, CodeUnknownFormula:
		return true
	}
	return false
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func WriteFailed(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeWriteFailed,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
	}
}
