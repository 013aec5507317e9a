package instruction

import (
	"testing"

	"pypatch/internal/errors"
)

func sample() []Instruction {
	return []Instruction{
		{
			Project: "black",
			Bug:     "12",
			File:    "black.py",
			LLM: Payload{Changes: []Change{
				{Function: "normalize", Class: "LineGenerator", Code: "def normalize(self):\n    pass\n"},
			}},
		},
		{
			Project: "pandas",
			Bug:     "7",
			File:    "pandas/core/frame.py",
			LLM: Payload{Changes: []Change{
				{Old: "a = 1", New: "a = 2"},
			}},
		},
		{
			Project: "Black",
			Bug:     "12",
			File:    "src/black.py",
			LLM: Payload{Changes: []Change{
				{Function: "visit", Code: "def visit(self):\n    pass\n"},
			}},
		},
	}
}

func TestSelect_CaseInsensitiveProject(t *testing.T) {
	inst, err := Select(sample(), "PANDAS", "7")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if inst.File != "pandas/core/frame.py" {
		t.Errorf("File = %q", inst.File)
	}
}

func TestSelect_LastMatchWins(t *testing.T) {
	inst, err := Select(sample(), "black", "12")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if inst.File != "src/black.py" {
		t.Errorf("File = %q, want the later record's file", inst.File)
	}
}

func TestSelect_BugIsExact(t *testing.T) {
	_, err := Select(sample(), "black", "012")
	if err == nil {
		t.Fatal("Select should fail for a non-exact bug id")
	}
	if !errors.HasCode(err, errors.NoMatchingInstruction) {
		t.Errorf("code = %v, want NoMatchingInstruction", errors.CodeOf(err))
	}
}

func TestSelect_NoMatch(t *testing.T) {
	_, err := Select(nil, "black", "12")
	if !errors.HasCode(err, errors.NoMatchingInstruction) {
		t.Errorf("code = %v, want NoMatchingInstruction", errors.CodeOf(err))
	}
}

func TestChangeKind(t *testing.T) {
	fn := Change{Function: "bar", Class: "Foo", Code: "def bar(self):\n    pass\n"}
	if fn.Kind() != KindFunction {
		t.Errorf("Kind = %v, want %v", fn.Kind(), KindFunction)
	}
	if fn.Target() != "Foo.bar" {
		t.Errorf("Target = %q, want Foo.bar", fn.Target())
	}

	sn := Change{Old: "x = 1\ny = 2", New: "x = 3"}
	if sn.Kind() != KindSnippet {
		t.Errorf("Kind = %v, want %v", sn.Kind(), KindSnippet)
	}
	if sn.Target() != `snippet "x = 1"` {
		t.Errorf("Target = %q", sn.Target())
	}
}
