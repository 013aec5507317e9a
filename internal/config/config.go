package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the pypatch configuration loaded from
// <work_dir>/.pypatch/config.json, with defaults for everything absent.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// Instructions is the path to the patch instruction file. Relative
	// paths are resolved against the work dir.
	Instructions string `json:"instructions" mapstructure:"instructions"`

	Write   WriteConfig   `json:"write" mapstructure:"write"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// WriteConfig controls how patched documents are persisted
type WriteConfig struct {
	// Atomic switches from direct overwrite to temp-file + rename.
	Atomic bool `json:"atomic" mapstructure:"atomic"`
	// Backup keeps a gzip snapshot of each file before its first write.
	Backup bool `json:"backup" mapstructure:"backup"`
}

// HistoryConfig controls the application-history ledger
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		Instructions: filepath.Join("framework", "results", "llm.json"),
		Write: WriteConfig{
			Atomic: false,
			Backup: false,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <workDir>/.pypatch/config.json.
// A missing config file yields the defaults.
func LoadConfig(workDir string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, ".pypatch"))
	return readConfig(v)
}

// LoadConfigFile loads configuration from an explicit file path. Unlike
// LoadConfig, a missing file is an error here: the caller asked for it.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("instructions", def.Instructions)
	v.SetDefault("write.atomic", def.Write.Atomic)
	v.SetDefault("write.backup", def.Write.Backup)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	return v
}

func readConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Instructions == "" {
		return &ConfigError{Field: "instructions", Message: "instruction path must not be empty"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'human' or 'json'"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
