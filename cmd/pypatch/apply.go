package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pypatch/internal/config"
	"pypatch/internal/errors"
	"pypatch/internal/history"
	"pypatch/internal/instruction"
	"pypatch/internal/logging"
	"pypatch/internal/patch"
)

var (
	applyInstructions string
	applyDiff         bool
	applyAtomic       bool
	applyBackup       bool
	applyNoHistory    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <project> <bug_id> <work_dir>",
	Short: "Apply the patch instruction for a project/bug pair",
	Long: `Apply the patch instruction matching the given project and bug id to the
files under work_dir.

The instruction file defaults to framework/results/llm.json under work_dir
and may be JSON, YAML, or TOML. When several records match, the last one wins.

Examples:
  pypatch apply pandas 42 /tmp/checkout
  pypatch apply pandas 42 /tmp/checkout --diff
  pypatch apply pandas 42 /tmp/checkout --instructions=patches.yaml --backup`,
	Args: cobra.ExactArgs(3),
	Run:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyInstructions, "instructions", "",
		"Path to the instruction file (overrides config)")
	applyCmd.Flags().BoolVar(&applyDiff, "diff", false, "Print a unified diff for each applied change")
	applyCmd.Flags().BoolVar(&applyAtomic, "atomic", false, "Write via temp file + rename")
	applyCmd.Flags().BoolVar(&applyBackup, "backup", false, "Snapshot each file before its first write")
	applyCmd.Flags().BoolVar(&applyNoHistory, "no-history", false, "Skip the application-history ledger")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
	start := time.Now()
	project, bug, workDir := args[0], args[1], args[2]

	cfg, err := loadConfig(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	instructions, err := instruction.Load(instructionsPath(cfg, workDir, applyInstructions))
	if err != nil {
		if !errors.HasCode(err, errors.InstructionsMissing) {
			fmt.Fprintf(os.Stderr, "Error loading instructions: %v\n", err)
			os.Exit(1)
		}
		// A missing instruction file degrades to an empty set, which then
		// fails selection below with its own message.
		fmt.Printf("❌ %v\n", err)
		instructions = nil
	}

	inst, err := instruction.Select(instructions, project, bug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var ledger *history.Store
	if cfg.History.Enabled && !applyNoHistory {
		ledger, err = history.Open(workDir, logger)
		if err != nil {
			logger.Warn("History ledger unavailable", logging.Fields{
				"error": err.Error(),
			})
		} else {
			defer func() { _ = ledger.Close() }()
		}
	}

	runID := uuid.NewString()
	opts := patch.Options{
		Atomic:   applyAtomic || cfg.Write.Atomic,
		Backup:   applyBackup || cfg.Write.Backup,
		ShowDiff: applyDiff,
	}

	applier := patch.New(workDir, logger, os.Stdout, ledger, runID, opts)
	outcomes := applier.Apply(context.Background(), inst)

	failed := 0
	for _, o := range outcomes {
		if o.Status != patch.StatusApplied {
			failed++
		}
	}

	logger.Debug("Apply completed", logging.Fields{
		"run_id":   runID,
		"changes":  len(outcomes),
		"failed":   failed,
		"duration": time.Since(start).Milliseconds(),
	})

	if failed > 0 {
		os.Exit(1)
	}
}

// instructionsPath resolves the instruction file location. The --instructions
// flag wins over config; relative paths are anchored at the work dir.
func instructionsPath(cfg *config.Config, workDir, override string) string {
	path := override
	if path == "" {
		path = cfg.Instructions
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return path
}
