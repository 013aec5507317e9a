package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pypatch/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <work_dir>",
	Short: "List past patch applications recorded under work_dir",
	Long: `List the application-history ledger for a work dir, newest first. Each row
is one change from a past apply run, with its outcome and content digests.

Examples:
  pypatch history /tmp/checkout
  pypatch history /tmp/checkout --limit=50`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	workDir := args[0]

	cfg, err := loadConfig(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ledger, err := history.Open(workDir, newLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = ledger.Close() }()

	entries, err := ledger.List(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No history recorded.")
		return
	}

	for _, e := range entries {
		fmt.Printf("%s  %-8s  %s/%s  %s  %s (%s)\n",
			e.AppliedAt.Local().Format(time.RFC3339),
			e.Outcome, e.Project, e.Bug, e.File, e.Target, e.ChangeKind)
		if e.BeforeDigest != "" {
			fmt.Printf("    %s -> %s  run %s\n",
				e.BeforeDigest[:12], e.AfterDigest[:12], e.RunID)
		}
	}
}
