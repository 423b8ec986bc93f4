// Package logging writes per-session JSONL journals and console diagnostics.
package logging

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one journal entry describing an executed command.
type Event struct {
	Time      time.Time `json:"time"`
	SessionID string    `json:"session_id"`
	Command   string    `json:"command"`
	Name      string    `json:"name,omitempty"`
	Path      string    `json:"path,omitempty"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
}

// SessionLogger appends journal events to a per-session JSONL file.
type SessionLogger struct {
	Dir       string
	SessionID string
	LogPath   string
	file      *os.File
	now       func() time.Time
}

// NewSessionLogger creates the journal directory for workDir under baseDir
// and opens a fresh JSONL file for this session.
func NewSessionLogger(baseDir, workDir string) (*SessionLogger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("log base dir is empty")
	}

	logDir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s.jsonl", runID()))
	file, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &SessionLogger{
		Dir:       logDir,
		SessionID: uuid.NewString(),
		LogPath:   logPath,
		file:      file,
		now:       time.Now,
	}, nil
}

// Record writes ev as one JSON line, stamping the time and session ID.
func (s *SessionLogger) Record(ev Event) error {
	if s == nil || s.file == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = s.now()
	}
	ev.SessionID = s.SessionID

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}
	data = append(data, '\n')
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (s *SessionLogger) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// FindLogDir returns the journal directory for a given work directory.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}

	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}

	baseDir = resolveBaseDir(baseDir, resolvedWorkDir)
	return filepath.Join(baseDir, projectSlug(resolvedWorkDir)), nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

func projectSlug(projectRoot string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(projectRoot)), hashPath(projectRoot))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405.000000"), os.Getpid())
}

// FindLatestLog finds the latest JSONL journal in a directory.
// It returns an empty path when the directory does not exist.
func FindLatestLog(logDir string) (string, error) {
	sessions, err := FindSessions(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if len(sessions) == 0 {
		return "", nil
	}
	return sessions[0].Path, nil
}

// LogSession describes one journal file.
type LogSession struct {
	ID      string
	Path    string
	ModTime time.Time
}

// FindSessions lists the journals in logDir, newest first.
func FindSessions(logDir string) ([]LogSession, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var sessions []LogSession
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, LogSession{
			ID:      strings.TrimSuffix(entry.Name(), ".jsonl"),
			Path:    filepath.Join(logDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].ModTime.Equal(sessions[j].ModTime) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// TailLog copies a journal to w. With n > 0 only roughly the last n lines
// are shown. With follow it keeps copying new lines until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// tailSeek positions file at the start of the n-th line from the end.
func tailSeek(file *os.File, n int) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
	}
	offset := 0
	lines := 0
	for i := end - 1; i >= 0; i-- {
		if data[i] == '\n' {
			lines++
			if lines == n {
				offset = i + 1
				break
			}
		}
	}

	_, err = file.Seek(int64(offset), io.SeekStart)
	return err
}
