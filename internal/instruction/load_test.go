package instruction

import (
	"os"
	"path/filepath"
	"testing"

	"pypatch/internal/errors"
)

const jsonDoc = `[
  {
    "project": "black",
    "bug": "12",
    "file": "black.py",
    "llm": {
      "changes": [
        {"function": "normalize", "class": "LineGenerator", "code": "def normalize(self):\n    pass\n"},
        {"old": "a = 1", "new": "a = 2"}
      ]
    }
  }
]`

const yamlDoc = `- project: black
  bug: "12"
  file: black.py
  llm:
    changes:
      - function: normalize
        class: LineGenerator
        code: "def normalize(self):\n    pass\n"
      - old: "a = 1"
        new: "a = 2"
`

const tomlDoc = `[[instructions]]
project = "black"
bug = "12"
file = "black.py"

[[instructions.llm.changes]]
function = "normalize"
class = "LineGenerator"
code = "def normalize(self):\n    pass\n"

[[instructions.llm.changes]]
old = "a = 1"
new = "a = 2"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkLoaded(t *testing.T, instructions []Instruction) {
	t.Helper()
	if len(instructions) != 1 {
		t.Fatalf("len(instructions) = %d, want 1", len(instructions))
	}
	inst := instructions[0]
	if inst.Project != "black" || inst.Bug != "12" || inst.File != "black.py" {
		t.Errorf("record keys = %q/%q/%q", inst.Project, inst.Bug, inst.File)
	}
	if len(inst.LLM.Changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2", len(inst.LLM.Changes))
	}
	if inst.LLM.Changes[0].Kind() != KindFunction {
		t.Errorf("change 0 kind = %v, want function", inst.LLM.Changes[0].Kind())
	}
	if inst.LLM.Changes[0].Code != "def normalize(self):\n    pass\n" {
		t.Errorf("change 0 code = %q", inst.LLM.Changes[0].Code)
	}
	if inst.LLM.Changes[1].Kind() != KindSnippet {
		t.Errorf("change 1 kind = %v, want snippet", inst.LLM.Changes[1].Kind())
	}
}

// All three formats must load the same logical instruction list.
func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"llm.json", jsonDoc},
		{"llm.yaml", yamlDoc},
		{"llm.toml", tomlDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions, err := Load(writeTemp(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			checkLoaded(t, instructions)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.HasCode(err, errors.InstructionsMissing) {
		t.Errorf("code = %v, want InstructionsMissing", errors.CodeOf(err))
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, "llm.json", "{not json"))
	if err == nil {
		t.Fatal("Load should fail on malformed JSON")
	}
	if errors.HasCode(err, errors.InstructionsMissing) {
		t.Error("malformed file must not be reported as missing")
	}
}
