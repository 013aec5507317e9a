package rewrite

import (
	"errors"
	"testing"
)

func TestReplaceSnippet_AllOccurrences(t *testing.T) {
	got, err := ReplaceSnippet("x = 1\nx = 1\n", "x = 1", "x = 2")
	if err != nil {
		t.Fatalf("ReplaceSnippet failed: %v", err)
	}
	if got != "x = 2\nx = 2\n" {
		t.Errorf("ReplaceSnippet = %q, want %q", got, "x = 2\nx = 2\n")
	}
}

func TestReplaceSnippet_MultiLine(t *testing.T) {
	doc := "def f():\n    if a:\n        return 1\n    return 0\n"
	got, err := ReplaceSnippet(doc, "    if a:\n        return 1\n", "    if a and b:\n        return 1\n")
	if err != nil {
		t.Fatalf("ReplaceSnippet failed: %v", err)
	}
	want := "def f():\n    if a and b:\n        return 1\n    return 0\n"
	if got != want {
		t.Errorf("ReplaceSnippet = %q, want %q", got, want)
	}
}

func TestReplaceSnippet_NotFound(t *testing.T) {
	_, err := ReplaceSnippet("x = 1\n", "y = 2", "y = 3")
	if !errors.Is(err, ErrSnippetNotFound) {
		t.Errorf("err = %v, want ErrSnippetNotFound", err)
	}
}
