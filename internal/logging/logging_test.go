// Package logging provides tests for session journals and tail output.
package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewSessionLogger(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := t.TempDir()

		logger, err := NewSessionLogger(baseDir, workDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.SessionID == "" {
			t.Error("expected SessionID to be set")
		}
		if !strings.HasPrefix(logger.LogPath, baseDir) {
			t.Errorf("LogPath %q not under %q", logger.LogPath, baseDir)
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewSessionLogger("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates log directory if missing", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "new-logs", "nested")
		logger, err := NewSessionLogger(baseDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if info, err := os.Stat(logger.Dir); err != nil || !info.IsDir() {
			t.Errorf("log dir not created: %v", err)
		}
	})
}

func TestRecord(t *testing.T) {
	logger, err := NewSessionLogger(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	logger.now = func() time.Time { return fixed }

	if err := logger.Record(Event{Command: "add", Name: "Buy milk", OK: true}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := logger.Record(Event{Command: "remove", Name: "x", Error: "task not found: x"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(logger.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		events = append(events, ev)
	}

	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].SessionID != logger.SessionID || events[1].SessionID != logger.SessionID {
		t.Error("events should carry the session ID")
	}
	if !events[0].Time.Equal(fixed) {
		t.Errorf("Time: got %v, want %v", events[0].Time, fixed)
	}
	if events[1].OK || events[1].Error == "" {
		t.Errorf("second event: got %+v", events[1])
	}

	// Recording after Close is a no-op.
	if err := logger.Record(Event{Command: "list"}); err != nil {
		t.Errorf("Record after Close: %v", err)
	}
}

func TestNilSessionLogger(t *testing.T) {
	var logger *SessionLogger
	if err := logger.Record(Event{Command: "add"}); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestFindLogDirStable(t *testing.T) {
	base := t.TempDir()
	work := t.TempDir()

	a, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("FindLogDir not stable: %q vs %q", a, b)
	}
	if filepath.Dir(a) != base {
		t.Errorf("FindLogDir(%q) = %q, want child of base", base, a)
	}

	other, _ := FindLogDir(base, t.TempDir())
	if other == a {
		t.Error("different work dirs should map to different log dirs")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-project", "my-project"},
		{"My Project!", "My_Project"},
		{"   ", "project"},
		{"???", "project"},
		{"a..b", "a..b"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		path, err := FindLatestLog(filepath.Join(t.TempDir(), "absent"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if path != "" {
			t.Errorf("expected empty path, got %q", path)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "a.jsonl")
		newer := filepath.Join(dir, "b.jsonl")
		other := filepath.Join(dir, "c.txt")
		for _, p := range []string{older, newer, other} {
			if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(older, past, past); err != nil {
			t.Fatal(err)
		}

		path, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if path != newer {
			t.Errorf("FindLatestLog: got %q, want %q", path, newer)
		}

		sessions, err := FindSessions(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(sessions) != 2 {
			t.Fatalf("FindSessions: got %d, want 2", len(sessions))
		}
		if sessions[0].ID != "b" || sessions[1].ID != "a" {
			t.Errorf("FindSessions order: got %s, %s", sessions[0].ID, sessions[1].ID)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	content := "line1\nline2\nline3\nline4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"all lines", 0, content},
		{"last two", 2, "line3\nline4\n"},
		{"more than available", 10, content},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("TailLog: got %q, want %q", buf.String(), tt.want)
			}
		})
	}

	t.Run("follow stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 1, true); err != nil {
			t.Fatalf("TailLog failed: %v", err)
		}
		if buf.String() != "line4\n" {
			t.Errorf("TailLog follow: got %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := TailLog(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope"), 0, false)
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
