//go:build !cgo

package locate

import (
	"context"
	"fmt"
)

// Structural locates functions by parsing the document with tree-sitter.
// This is a stub implementation for non-CGO builds; every call reports a
// parse failure so the dispatcher falls through to the textual locator.
type Structural struct{}

// NewStructural creates a structural locator.
// Returns a stub when CGO is disabled.
func NewStructural() *Structural {
	return &Structural{}
}

// IsAvailable returns whether structural location is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}

// Locate always signals ErrParseFailure in non-CGO builds.
func (s *Structural) Locate(ctx context.Context, content, function, class string) (Span, error) {
	return Span{}, fmt.Errorf("%w: tree-sitter requires CGO", ErrParseFailure)
}
