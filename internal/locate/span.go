// Package locate finds the byte span of a named Python function inside a
// source document. A tree-sitter parse is tried first; when the document does
// not parse cleanly (or the parser is unavailable), a regex line scan with the
// same class/function semantics takes over.
package locate

import "errors"

var (
	// ErrNotFound is returned when the requested class or function does not
	// exist in the document.
	ErrNotFound = errors.New("target not found")

	// ErrParseFailure is returned when the document cannot be structurally
	// parsed. Callers retry with the textual locator.
	ErrParseFailure = errors.New("structural parse failed")
)

// Span is the half-open byte range [StartOffset, EndOffset) covering a
// function definition line through its last body line, plus the column width
// of the defining indentation.
type Span struct {
	StartOffset int
	EndOffset   int
	IndentWidth int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.EndOffset - s.StartOffset
}
