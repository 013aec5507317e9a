package rewrite

import (
	"errors"
	"strings"
)

// ErrSnippetNotFound is returned when the snippet to replace does not occur
// in the document.
var ErrSnippetNotFound = errors.New("snippet not found")

// ReplaceSnippet substitutes every non-overlapping occurrence of old with new
// and returns the updated document. It has no indentation awareness: callers
// supply old and new already indented to match the file. This is the legacy
// whole-snippet edit path and is independent of the locators.
func ReplaceSnippet(document, old, new string) (string, error) {
	if !strings.Contains(document, old) {
		return "", ErrSnippetNotFound
	}
	return strings.ReplaceAll(document, old, new), nil
}
