package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"loud", log.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !ValidLogLevel("Debug") || ValidLogLevel("loud") {
		t.Error("ValidLogLevel mismatch")
	}
}

func TestParseLogFormatter(t *testing.T) {
	if ParseLogFormatter("json") != log.JSONFormatter {
		t.Error("json formatter")
	}
	if ParseLogFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt formatter")
	}
	if ParseLogFormatter("pretty") != log.TextFormatter {
		t.Error("unknown formatter should fall back to text")
	}
	if !ValidLogFormat("text") || ValidLogFormat("pretty") {
		t.Error("ValidLogFormat mismatch")
	}
}

func TestConsoleLoggerFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerFromConfig(&buf, "info", "logfmt", false, false)

	logger.Debug("hidden")
	logger.Info("task added", "name", "Buy milk")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered: %q", out)
	}
	if !strings.Contains(out, "task added") || !strings.Contains(out, "Buy milk") {
		t.Errorf("missing info message: %q", out)
	}
	if !strings.Contains(out, "tasklist") {
		t.Errorf("missing prefix: %q", out)
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	logger.Error("nothing to see")
}
