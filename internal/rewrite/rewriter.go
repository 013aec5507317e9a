// Package rewrite splices re-indented replacement code into a document and
// persists the result. The indentation of the target span wins: the
// replacement's own top-level indentation is discarded, while its internal
// nesting is kept by shifting every line the same amount.
package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pypatch/internal/locate"
)

// Reindent formats replacement text for insertion at a span with the given
// indentation width. The first line is stripped of its own leading whitespace
// and indented to width; every later non-blank line gains width extra columns
// on top of the whitespace it already carries; blank lines pass through
// unchanged. The result always ends with a newline.
func Reindent(replacement string, width int) string {
	indent := strings.Repeat(" ", width)
	lines := strings.Split(replacement, "\n")

	for i, ln := range lines {
		switch {
		case i == 0:
			lines[i] = indent + strings.TrimLeft(ln, " \t")
		case strings.TrimSpace(ln) == "":
			// keep blank lines as they are
		default:
			lines[i] = indent + ln
		}
	}

	out := strings.Join(lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Apply splices the re-indented replacement over span and returns the new
// document. The input document is not modified.
func Apply(document string, span locate.Span, replacement string) string {
	formatted := Reindent(replacement, span.IndentWidth)
	return document[:span.StartOffset] + formatted + document[span.EndOffset:]
}

// Persist writes the document back to path. The default is a direct
// overwrite, matching the historic behavior; with atomic set, the content
// goes to a temp file in the same directory first and lands via rename, with
// the temp file removed on any failure.
func Persist(path, document string, atomic bool) error {
	if !atomic {
		return os.WriteFile(path, []byte(document), 0644)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(document); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
