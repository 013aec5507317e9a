// Package errors defines stable error codes for every failure mode of the
// patch applier, so callers can classify outcomes without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InstructionsMissing indicates the instruction file cannot be found
	InstructionsMissing ErrorCode = "INSTRUCTIONS_MISSING"
	// NoMatchingInstruction indicates no record matches the project/bug pair
	NoMatchingInstruction ErrorCode = "NO_MATCHING_INSTRUCTION"
	// TargetFileMissing indicates the file named by an instruction does not exist
	TargetFileMissing ErrorCode = "TARGET_FILE_MISSING"
	// ParseFailure indicates the structural parse of the target file failed
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// TargetNotFound indicates neither locator found the function or snippet
	TargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	// WriteFailed indicates the patched document could not be persisted
	WriteFailed ErrorCode = "WRITE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// PatchError represents a patch failure with a stable code and optional cause
type PatchError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a PatchError without an underlying cause
func New(code ErrorCode, message string) *PatchError {
	return &PatchError{Code: code, Message: message}
}

// Wrap creates a PatchError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *PatchError {
	return &PatchError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *PatchError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PatchError) Unwrap() error {
	return e.cause
}

// CodeOf returns the error code carried by err, or InternalError when err
// is not a PatchError.
func CodeOf(err error) ErrorCode {
	var pe *PatchError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
