package main

import (
	"os"

	"pypatch/internal/config"
	"pypatch/internal/logging"
	"pypatch/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pypatch",
	Short: "pypatch - apply generated patches to Python source trees",
	Long: `pypatch applies patch instructions to Python projects. Each instruction
targets a function (optionally scoped to a class) whose body is replaced with
new code, or an exact code snippet to substitute. Function boundaries are
resolved by parsing the source, with a textual fallback when the file does
not parse.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("pypatch version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: <work_dir>/.pypatch/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human, json (default: human)")
}

// loadConfig resolves the effective config: the --config flag names an
// explicit file, otherwise the work dir's .pypatch/config.json (defaults when
// absent).
func loadConfig(workDir string) (*config.Config, error) {
	if configFlag != "" {
		return config.LoadConfigFile(configFlag)
	}
	return config.LoadConfig(workDir)
}

// newLogger builds the command logger from CLI flags, the PYPATCH_LOG_LEVEL
// env var, and the work-dir config, in that order of precedence.
func newLogger(cfg *config.Config) *logging.Logger {
	level := logLevelFlag
	if level == "" {
		level = os.Getenv("PYPATCH_LOG_LEVEL")
	}
	if level == "" && cfg != nil {
		level = cfg.Logging.Level
	}
	if level == "" {
		level = "info"
	}

	format := logFormatFlag
	if format == "" && cfg != nil {
		format = cfg.Logging.Format
	}
	if format == "" {
		format = "human"
	}

	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.LogLevel(level),
	})
}
