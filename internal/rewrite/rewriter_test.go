package rewrite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pypatch/internal/locate"
)

func TestReindent(t *testing.T) {
	tests := []struct {
		name        string
		replacement string
		width       int
		want        string
	}{
		{
			name:        "first line own indentation is discarded",
			replacement: "        def f():\n    return 1",
			width:       4,
			want:        "    def f():\n        return 1\n",
		},
		{
			name:        "relative nesting is preserved",
			replacement: "def f(x):\n    if x:\n        return 1\n    return 0\n",
			width:       4,
			want:        "    def f(x):\n        if x:\n            return 1\n        return 0\n",
		},
		{
			name:        "blank lines pass through unchanged",
			replacement: "def f():\n    a = 1\n\n    return a\n",
			width:       2,
			want:        "  def f():\n      a = 1\n\n      return a\n",
		},
		{
			name:        "zero width keeps top level",
			replacement: "def f():\n    pass",
			width:       0,
			want:        "def f():\n    pass\n",
		},
		{
			name:        "missing trailing newline is added",
			replacement: "def f():\n    pass",
			width:       4,
			want:        "    def f():\n        pass\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reindent(tt.replacement, tt.width); got != tt.want {
				t.Errorf("Reindent = %q, want %q", got, tt.want)
			}
		})
	}
}

// The scenario from the method-replacement contract: swapping a method body
// keeps the surrounding class and the gap before the next method intact.
func TestApply_MethodReplacement(t *testing.T) {
	doc := "class Foo:\n    def bar(self):\n        return 1\n\n    def baz(self):\n        return 2\n"

	l := locate.New(nil)
	span, _, err := l.Locate(context.Background(), doc, "bar", "Foo")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	got := Apply(doc, span, "def bar(self):\n    return 42\n")
	want := "class Foo:\n    def bar(self):\n        return 42\n\n    def baz(self):\n        return 2\n"
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

// Replacing a span with its own dedented content must reproduce the document
// byte for byte.
func TestApply_Idempotence(t *testing.T) {
	doc := "class Foo:\n    def bar(self):\n        return 1\n\n    def baz(self):\n        return 2\n"

	l := locate.New(nil)
	span, _, err := l.Locate(context.Background(), doc, "bar", "Foo")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if got := Apply(doc, span, "def bar(self):\n    return 1\n"); got != doc {
		t.Errorf("Apply changed the document:\n%q\nwant\n%q", got, doc)
	}
}

// Round trip: after a replacement that defines the same function, locating it
// again recovers exactly the re-indented replacement.
func TestApply_RoundTrip(t *testing.T) {
	doc := "def compute():\n    return 1\n\ndef other():\n    return 2\n"
	replacement := "def compute():\n    value = 40 + 2\n    return value\n"

	l := locate.New(nil)
	span, _, err := l.Locate(context.Background(), doc, "compute", "")
	if err != nil {
		t.Fatalf("first Locate failed: %v", err)
	}
	patched := Apply(doc, span, replacement)

	span2, _, err := l.Locate(context.Background(), patched, "compute", "")
	if err != nil {
		t.Fatalf("second Locate failed: %v", err)
	}
	if got := patched[span2.StartOffset:span2.EndOffset]; got != Reindent(replacement, span.IndentWidth) {
		t.Errorf("re-located span = %q, want %q", got, Reindent(replacement, span.IndentWidth))
	}
}

func TestPersist_Direct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Persist(path, "def f():\n    pass\n", false); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "def f():\n    pass\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestPersist_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Persist(path, "new content\n", true); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new content\n" {
		t.Errorf("file content = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
