package config

import "flag"

// flagFields maps CLI flag names to config field names.
var flagFields = map[string]string{
	"file":            "data_file",
	"log-dir":         "log_dir",
	"history":         "history",
	"strict-priority": "strict_priority",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
}

// parseFlags defines the global flags on fs, parses args and records
// every explicitly set flag as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "Default task file for save and load")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session journal directory")
	fs.BoolVar(&cfg.History, "history", cfg.History, "Record a journal of executed commands")
	fs.BoolVar(&cfg.StrictPriority, "strict-priority", cfg.StrictPriority, "Reject unknown priorities instead of using Low")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
