// Package instruction models externally supplied patch instructions: which
// project/bug they belong to, which file they target, and the list of edits
// to perform.
package instruction

import (
	"fmt"
	"strings"

	"pypatch/internal/errors"
)

// ChangeKind distinguishes the two edit forms an instruction may carry.
type ChangeKind string

const (
	// KindFunction replaces a whole named function or method.
	KindFunction ChangeKind = "function"
	// KindSnippet is the legacy exact-substring replace-all form.
	KindSnippet ChangeKind = "snippet"
)

// Change is a single edit. Function-form changes set Function (and optionally
// Class) plus Code; legacy snippet changes set Old and New.
type Change struct {
	Function string `json:"function,omitempty" yaml:"function,omitempty" toml:"function,omitempty"`
	Class    string `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`

	Old string `json:"old,omitempty" yaml:"old,omitempty" toml:"old,omitempty"`
	New string `json:"new,omitempty" yaml:"new,omitempty" toml:"new,omitempty"`
}

// Kind reports which edit form the change uses. Function-form wins when both
// are populated.
func (c Change) Kind() ChangeKind {
	if c.Function != "" {
		return KindFunction
	}
	return KindSnippet
}

// Target describes the change for status lines and the history ledger.
func (c Change) Target() string {
	if c.Kind() == KindFunction {
		if c.Class != "" {
			return c.Class + "." + c.Function
		}
		return c.Function
	}
	first := c.Old
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return fmt.Sprintf("snippet %q", first)
}

// Payload wraps the change list, mirroring the instruction file's nesting.
type Payload struct {
	Changes []Change `json:"changes" yaml:"changes" toml:"changes"`
}

// Instruction is one patch record: project/bug keys, the target file path
// relative to the work dir, and the edits to apply to it.
type Instruction struct {
	Project string  `json:"project" yaml:"project" toml:"project"`
	Bug     string  `json:"bug" yaml:"bug" toml:"bug"`
	File    string  `json:"file" yaml:"file" toml:"file"`
	LLM     Payload `json:"llm" yaml:"llm" toml:"llm"`
}

// Select returns the instruction matching project (case-insensitive) and bug
// (exact). When several records match, the last one wins. A nil result never
// accompanies a nil error.
func Select(instructions []Instruction, project, bug string) (*Instruction, error) {
	var selected *Instruction
	for i := range instructions {
		inst := &instructions[i]
		if strings.EqualFold(inst.Project, project) && inst.Bug == bug {
			selected = inst
		}
	}
	if selected == nil {
		return nil, errors.New(errors.NoMatchingInstruction,
			fmt.Sprintf("no patch found for project %q with bug id %q", project, bug))
	}
	return selected, nil
}
