// Package patch applies the changes of one instruction to its target file,
// reporting and recording a per-change outcome. A failing change never stops
// the remaining changes.
package patch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pypatch/internal/backup"
	"pypatch/internal/diff"
	"pypatch/internal/errors"
	"pypatch/internal/history"
	"pypatch/internal/instruction"
	"pypatch/internal/locate"
	"pypatch/internal/logging"
	"pypatch/internal/rewrite"
)

// Status classifies the outcome of one attempted change.
type Status string

const (
	// StatusApplied means the change was written to the file.
	StatusApplied Status = "applied"
	// StatusFileMissing means the target file does not exist.
	StatusFileMissing Status = "file-missing"
	// StatusTargetNotFound means neither locator found the function, or the
	// snippet does not occur in the file.
	StatusTargetNotFound Status = "target-not-found"
	// StatusWriteFailed means the patched document could not be persisted.
	StatusWriteFailed Status = "write-failed"
)

// Glyph returns the status marker used on per-change output lines.
func (s Status) Glyph() string {
	switch s {
	case StatusApplied:
		return "✅"
	case StatusTargetNotFound:
		return "⚠️"
	default:
		return "❌"
	}
}

// Outcome is the result of one attempted change.
type Outcome struct {
	Change instruction.Change
	Status Status
	Method locate.Method // which locator matched, for applied function changes
	Err    error

	beforeDigest string
	afterDigest  string
}

// Options configures an Applier beyond its collaborators.
type Options struct {
	Atomic   bool
	Backup   bool
	ShowDiff bool
}

// Applier applies instructions to files under a work dir.
type Applier struct {
	workDir string
	logger  *logging.Logger
	out     io.Writer
	locator *locate.Locator
	ledger  *history.Store // nil disables history
	runID   string
	opts    Options

	backedUp map[string]bool
}

// New creates an Applier. ledger may be nil; out receives one status line per
// attempted change.
func New(workDir string, logger *logging.Logger, out io.Writer, ledger *history.Store, runID string, opts Options) *Applier {
	return &Applier{
		workDir:  workDir,
		logger:   logger,
		out:      out,
		locator:  locate.New(logger),
		ledger:   ledger,
		runID:    runID,
		opts:     opts,
		backedUp: make(map[string]bool),
	}
}

// Apply runs every change of the instruction in order and returns their
// outcomes. Each change re-reads the file, so later changes see the effect of
// earlier ones.
func (a *Applier) Apply(ctx context.Context, inst *instruction.Instruction) []Outcome {
	outcomes := make([]Outcome, 0, len(inst.LLM.Changes))
	path := filepath.Join(a.workDir, inst.File)

	for _, change := range inst.LLM.Changes {
		outcome := a.applyChange(ctx, path, change)
		a.report(path, change, outcome)
		a.record(inst, change, outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (a *Applier) applyChange(ctx context.Context, path string, change instruction.Change) Outcome {
	outcome := Outcome{Change: change}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			outcome.Status = StatusFileMissing
			outcome.Err = errors.New(errors.TargetFileMissing, fmt.Sprintf("file not found: %s", path))
		} else {
			outcome.Status = StatusFileMissing
			outcome.Err = errors.Wrap(errors.TargetFileMissing, "reading target file", err)
		}
		return outcome
	}
	content := string(data)

	var patched string
	switch change.Kind() {
	case instruction.KindFunction:
		span, method, lerr := a.locator.Locate(ctx, content, change.Function, change.Class)
		if lerr != nil {
			outcome.Status = StatusTargetNotFound
			outcome.Err = errors.Wrap(errors.TargetNotFound, "locating function "+change.Target(), lerr)
			return outcome
		}
		outcome.Method = method
		patched = rewrite.Apply(content, span, change.Code)
	case instruction.KindSnippet:
		var serr error
		patched, serr = rewrite.ReplaceSnippet(content, change.Old, change.New)
		if serr != nil {
			if stderrors.Is(serr, rewrite.ErrSnippetNotFound) {
				outcome.Status = StatusTargetNotFound
				outcome.Err = errors.New(errors.TargetNotFound, fmt.Sprintf("code to replace not found in %s", path))
				return outcome
			}
			outcome.Status = StatusTargetNotFound
			outcome.Err = serr
			return outcome
		}
	}

	if a.opts.Backup && !a.backedUp[path] {
		rel, rerr := filepath.Rel(a.workDir, path)
		if rerr != nil {
			rel = filepath.Base(path)
		}
		if _, berr := backup.Snapshot(a.workDir, rel, content, a.runID); berr != nil {
			a.logger.Warn("backup failed, continuing without snapshot", logging.Fields{
				"file":  path,
				"error": berr.Error(),
			})
		} else {
			a.backedUp[path] = true
		}
	}

	if werr := rewrite.Persist(path, patched, a.opts.Atomic); werr != nil {
		outcome.Status = StatusWriteFailed
		outcome.Err = errors.Wrap(errors.WriteFailed, "writing patched file", werr)
		return outcome
	}

	if a.opts.ShowDiff {
		r := diff.Compute(content, patched, path+" (before)", path+" (after)")
		fmt.Fprint(a.out, r.Format())
	}

	outcome.Status = StatusApplied
	outcome.beforeDigest = history.Digest(content)
	outcome.afterDigest = history.Digest(patched)
	return outcome
}

// report prints the per-change status line.
func (a *Applier) report(path string, change instruction.Change, outcome Outcome) {
	glyph := outcome.Status.Glyph()
	switch outcome.Status {
	case StatusApplied:
		if change.Kind() == instruction.KindFunction {
			fmt.Fprintf(a.out, "%s Replaced %s in %s\n", glyph, change.Target(), path)
		} else {
			fmt.Fprintf(a.out, "%s Successfully replaced code in %s\n", glyph, path)
		}
	case StatusFileMissing:
		fmt.Fprintf(a.out, "%s File not found: %s\n", glyph, path)
	case StatusTargetNotFound:
		if change.Kind() == instruction.KindFunction {
			fmt.Fprintf(a.out, "%s %s not found in %s\n", glyph, change.Target(), path)
		} else {
			fmt.Fprintf(a.out, "%s Code to replace not found in %s\n", glyph, path)
		}
	default:
		fmt.Fprintf(a.out, "%s Failed to write %s: %v\n", glyph, path, outcome.Err)
	}
}

// record appends the change outcome to the history ledger, when enabled.
func (a *Applier) record(inst *instruction.Instruction, change instruction.Change, outcome Outcome) {
	if a.ledger == nil {
		return
	}

	entry := history.Entry{
		RunID:        a.runID,
		Project:      inst.Project,
		Bug:          inst.Bug,
		File:         inst.File,
		ChangeKind:   string(change.Kind()),
		Target:       change.Target(),
		Outcome:      string(outcome.Status),
		BeforeDigest: outcome.beforeDigest,
		AfterDigest:  outcome.afterDigest,
	}

	if err := a.ledger.Record(entry); err != nil {
		a.logger.Warn("failed to record history entry", logging.Fields{
			"file":  inst.File,
			"error": err.Error(),
		})
	}
}
