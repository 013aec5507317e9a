package locate

import (
	"context"
	"errors"

	"pypatch/internal/logging"
)

// Method identifies which code path produced a span.
type Method string

const (
	// MethodStructural means the span came from a tree-sitter parse.
	MethodStructural Method = "structural"
	// MethodTextual means the span came from the regex line scan.
	MethodTextual Method = "textual"
)

// Locator dispatches between the structural and textual locators: structural
// first, textual only after a parse failure. A NotFound from a clean parse is
// authoritative and does not trigger the fallback.
type Locator struct {
	structural *Structural
	textual    *Textual
	logger     *logging.Logger
}

// New creates a locator. logger may be nil.
func New(logger *logging.Logger) *Locator {
	return &Locator{
		structural: NewStructural(),
		textual:    NewTextual(),
		logger:     logger,
	}
}

// Locate finds the span of the named function, optionally scoped to class.
// It returns the span, the method that produced it, and ErrNotFound when
// neither path finds the target.
func (l *Locator) Locate(ctx context.Context, content, function, class string) (Span, Method, error) {
	span, err := l.structural.Locate(ctx, content, function, class)
	if err == nil {
		return span, MethodStructural, nil
	}
	if !errors.Is(err, ErrParseFailure) {
		return Span{}, MethodStructural, err
	}

	if l.logger != nil {
		l.logger.Debug("structural parse failed, retrying with textual scan", logging.Fields{
			"function": function,
			"class":    class,
			"reason":   err.Error(),
		})
	}

	span, terr := l.textual.Locate(content, function, class)
	if terr != nil {
		return Span{}, MethodTextual, terr
	}
	return span, MethodTextual, nil
}
