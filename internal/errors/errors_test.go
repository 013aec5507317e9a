package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPatchError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      WriteFailed,
			message:   "cannot persist patched file",
			cause:     errors.New("permission denied"),
			wantParts: []string{"WRITE_FAILED", "cannot persist patched file", "permission denied"},
		},
		{
			name:      "without cause",
			code:      TargetNotFound,
			message:   "function 'parse' not found",
			cause:     nil,
			wantParts: []string{"TARGET_NOT_FOUND", "function 'parse' not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *PatchError
			if tt.cause != nil {
				err = Wrap(tt.code, tt.message, tt.cause)
			} else {
				err = New(tt.code, tt.message)
			}
			got := err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want it to contain %q", got, part)
				}
			}
		})
	}
}

func TestPatchError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(TargetFileMissing, "target missing", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the wrapped cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ParseFailure, "bad syntax")); got != ParseFailure {
		t.Errorf("CodeOf = %v, want %v", got, ParseFailure)
	}

	// Code survives further %w wrapping.
	wrapped := fmt.Errorf("applying change: %w", New(TargetNotFound, "no def"))
	if got := CodeOf(wrapped); got != TargetNotFound {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, TargetNotFound)
	}

	if got := CodeOf(errors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %v, want %v", got, InternalError)
	}
}

func TestHasCode(t *testing.T) {
	err := New(NoMatchingInstruction, "no patch for project 'black' bug '12'")
	if !HasCode(err, NoMatchingInstruction) {
		t.Error("HasCode = false, want true")
	}
	if HasCode(err, InstructionsMissing) {
		t.Error("HasCode matched the wrong code")
	}
}
