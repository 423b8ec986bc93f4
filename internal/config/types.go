package config

import (
	"fmt"

	"github.com/nibzard/tasklist-go/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDataFile       = "tasks.json"
	DefaultLogDir         = "~/.tasklist"
	DefaultHistory        = true
	DefaultStrictPriority = true
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// DataFile is offered when a save or load prompt is left blank.
	DataFile string `toml:"data_file"`
	LogDir   string `toml:"log_dir"`

	// History enables the per-session command journal.
	History bool `toml:"history"`

	// StrictPriority rejects unknown priority input instead of using Low.
	StrictPriority bool `toml:"strict_priority"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_file",
		"log_dir",
		"history",
		"strict_priority",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogDir = DefaultLogDir
	cfg.History = DefaultHistory
	cfg.StrictPriority = DefaultStrictPriority
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if !logging.ValidLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level %q must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	if !logging.ValidLogFormat(c.LogFormat) {
		return fmt.Errorf("log_format %q must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}

// Value returns the string form of a field named as in configFields.
func (c *Config) Value(field string) string {
	switch field {
	case "data_file":
		return c.DataFile
	case "log_dir":
		return c.LogDir
	case "history":
		return fmt.Sprint(c.History)
	case "strict_priority":
		return fmt.Sprint(c.StrictPriority)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	}
	return ""
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}
