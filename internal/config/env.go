package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nibzard/tasklist-go/internal/utils"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// loadDotEnv copies variables from .env into the process environment.
// Variables that are already set keep their values.
func loadDotEnv() error {
	if _, err := os.Stat(dotEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(dotEnvFile); err != nil {
		return fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	return nil
}

// loadFromEnv overrides config from TASKLIST_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKLIST_DATA_FILE"); v != "" {
		cfg.DataFile = v
		set("data_file")
	}
	if v := os.Getenv("TASKLIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TASKLIST_HISTORY"); v != "" {
		cfg.History = utils.BoolFromString(v)
		set("history")
	}
	if v := os.Getenv("TASKLIST_STRICT_PRIORITY"); v != "" {
		cfg.StrictPriority = utils.BoolFromString(v)
		set("strict_priority")
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TASKLIST_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
		set("log_caller")
	}
}
