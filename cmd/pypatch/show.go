package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pypatch/internal/instruction"
)

var showInstructions string

var showCmd = &cobra.Command{
	Use:   "show <project> <bug_id> <work_dir>",
	Short: "Show the instruction that apply would use, without touching files",
	Long: `Show the patch instruction matching the given project and bug id. Selection
follows the same rules as apply (case-insensitive project, exact bug id,
last match wins), so this is a dry-run of which record would be applied.

Examples:
  pypatch show pandas 42 /tmp/checkout
  pypatch show pandas 42 /tmp/checkout --instructions=patches.yaml`,
	Args: cobra.ExactArgs(3),
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showInstructions, "instructions", "",
		"Path to the instruction file (overrides config)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	project, bug, workDir := args[0], args[1], args[2]

	cfg, err := loadConfig(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	instructions, err := instruction.Load(instructionsPath(cfg, workDir, showInstructions))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading instructions: %v\n", err)
		os.Exit(1)
	}

	inst, err := instruction.Select(instructions, project, bug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Project: %s\n", inst.Project)
	fmt.Printf("Bug:     %s\n", inst.Bug)
	fmt.Printf("File:    %s\n", inst.File)
	fmt.Printf("Changes: %d\n", len(inst.LLM.Changes))
	for i, change := range inst.LLM.Changes {
		fmt.Printf("\n[%d] %s %s\n", i+1, change.Kind(), change.Target())
		body := change.Code
		if change.Kind() == instruction.KindSnippet {
			body = change.New
		}
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}
