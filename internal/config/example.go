package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Task file used when a save or load prompt is left blank
data_file = "tasks.json"

# Session journal directory (supports ~ and $VAR expansion)
log_dir = "~/.tasklist"

# Record every executed command in a JSONL journal
history = true

# Reject unknown priorities (true) or fall back to Low (false)
strict_priority = true

# Console diagnostics
log_level = "warn"      # debug, info, warn, error, fatal
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
