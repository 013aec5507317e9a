//go:build cgo

package locate

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Structural locates functions by parsing the document with tree-sitter.
type Structural struct {
	parser *sitter.Parser
}

// NewStructural creates a tree-sitter backed locator for Python source.
func NewStructural() *Structural {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Structural{parser: p}
}

// IsAvailable returns whether structural location is available.
func IsAvailable() bool {
	return true
}

// Locate finds the first function_definition named function in pre-order,
// optionally restricted to the subtree of the first class_definition named
// class. A document with syntax errors yields ErrParseFailure, never
// ErrNotFound, so callers know to retry textually.
func (s *Structural) Locate(ctx context.Context, content, function, class string) (Span, error) {
	source := []byte(content)

	tree, err := s.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return Span{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return Span{}, fmt.Errorf("%w: document contains syntax errors", ErrParseFailure)
	}

	scope := root
	if class != "" {
		cls := findFirstNamed(root, "class_definition", class, source)
		if cls == nil {
			return Span{}, fmt.Errorf("%w: class %q", ErrNotFound, class)
		}
		scope = cls
	}

	fn := findFirstNamed(scope, "function_definition", function, source)
	if fn == nil {
		return Span{}, fmt.Errorf("%w: function %q", ErrNotFound, function)
	}

	lines := splitLines(content)
	row := int(fn.StartPoint().Row)
	if row >= len(lines) {
		return Span{}, fmt.Errorf("%w: function %q", ErrNotFound, function)
	}

	// Span offsets are line-based: the start is the beginning of the def
	// line (including its indentation), the end comes from the shared
	// indentation scan rather than the parser's own node extent.
	indent := indentWidth(lines[row].text)
	end := resolveEnd(lines, row, indent)

	return Span{
		StartOffset: lines[row].start,
		EndOffset:   spanEndOffset(lines, row, end, len(content)),
		IndentWidth: indent,
	}, nil
}

// findFirstNamed walks the subtree rooted at node depth-first in document
// order and returns the first node of the given type whose "name" field
// matches name. Later same-named definitions are ignored.
func findFirstNamed(node *sitter.Node, nodeType, name string, source []byte) *sitter.Node {
	if node == nil {
		return nil
	}

	if node.Type() == nodeType {
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil && string(source[nameNode.StartByte():nameNode.EndByte()]) == name {
			return node
		}
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		if found := findFirstNamed(node.Child(int(i)), nodeType, name, source); found != nil {
			return found
		}
	}
	return nil
}
