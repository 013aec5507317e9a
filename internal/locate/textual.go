package locate

import (
	"fmt"
	"regexp"
)

// Textual locates functions with a regex line scan. It replicates the
// structural locator's class/function search semantics without needing the
// document to parse, so it works on files with syntax errors elsewhere.
type Textual struct{}

// NewTextual creates a textual locator.
func NewTextual() *Textual {
	return &Textual{}
}

// Locate scans top to bottom for the first def line matching function. When
// class is given, the scan is restricted to the class's own block: lines
// below the first matching class line, up to the first non-blank non-comment
// line back at or left of the class's indentation. Method candidates must be
// indented strictly deeper than the class line; any deeper nesting level is
// accepted, mirroring the structural locator's permissive subtree search.
func (t *Textual) Locate(content, function, class string) (Span, error) {
	lines := splitLines(content)

	defRe := regexp.MustCompile(`^(\s*)def\s+` + regexp.QuoteMeta(function) + `\s*\(`)

	first, limit := 0, len(lines)
	classIndent := -1

	if class != "" {
		classRe := regexp.MustCompile(`^(\s*)class\s+` + regexp.QuoteMeta(class) + `\s*[:(]`)
		classLine := -1
		for i, ln := range lines {
			if m := classRe.FindStringSubmatch(ln.text); m != nil {
				classLine = i
				classIndent = len(m[1])
				break
			}
		}
		if classLine < 0 {
			return Span{}, fmt.Errorf("%w: class %q", ErrNotFound, class)
		}
		first = classLine + 1
		limit = resolveEnd(lines, classLine, classIndent)
	}

	for i := first; i < limit; i++ {
		m := defRe.FindStringSubmatch(lines[i].text)
		if m == nil {
			continue
		}
		indent := len(m[1])
		if class != "" && indent <= classIndent {
			// A def back at the class's own level is a sibling, not a
			// member, even when it appears inside the scan window.
			continue
		}

		end := resolveEnd(lines, i, indent)
		return Span{
			StartOffset: lines[i].start,
			EndOffset:   spanEndOffset(lines, i, end, len(content)),
			IndentWidth: indent,
		}, nil
	}

	return Span{}, fmt.Errorf("%w: function %q", ErrNotFound, function)
}
