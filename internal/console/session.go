// Package console runs the interactive numbered-menu session over a task
// repository.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/task"
)

// ErrQuit is returned by Execute when the user asks to end the session.
var ErrQuit = errors.New("quit")

// Recorder receives one event per executed command.
type Recorder interface {
	Record(ev logging.Event) error
}

// Option configures a Session.
type Option func(*Session)

// WithInput sets the reader commands and answers are read from.
func WithInput(r io.Reader) Option {
	return func(s *Session) {
		s.in = bufio.NewReader(r)
	}
}

// WithOutput sets the writer prompts and results are printed to.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithStrictPriority controls how unknown priority input is handled.
// When strict, the add or edit is aborted; otherwise Low is used.
func WithStrictPriority(strict bool) Option {
	return func(s *Session) {
		s.strictPriority = strict
	}
}

// WithDefaultFile sets the path used when a file prompt is left blank.
func WithDefaultFile(path string) Option {
	return func(s *Session) {
		s.defaultFile = path
	}
}

// WithClock overrides the time source used for new tasks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRecorder sets where command events are journaled.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// Session owns a task repository and serves menu commands against it.
type Session struct {
	repo           *task.Repository
	in             *bufio.Reader
	out            io.Writer
	strictPriority bool
	defaultFile    string
	now            func() time.Time
	recorder       Recorder
	logger         *log.Logger

	lines     chan readResult
	startRead sync.Once
}

type readResult struct {
	line string
	err  error
}

// NewSession returns a session over repo. A nil repo starts empty.
func NewSession(repo *task.Repository, opts ...Option) *Session {
	if repo == nil {
		repo = task.NewRepository()
	}
	s := &Session{
		repo:           repo,
		in:             bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		strictPriority: true,
		now:            time.Now,
		logger:         logging.NewDiscardLogger(),
		lines:          make(chan readResult),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the repository owned by the session.
func (s *Session) Repository() *task.Repository {
	return s.repo
}

// Run prints the menu and serves commands until input ends, the user quits
// or ctx is cancelled. Cancellation interrupts a pending read and is
// returned as ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	s.PrintMenu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		code, err := s.input(ctx, "Enter command index: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.ExecuteContext(ctx, code); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// PrintMenu prints the numbered command menu.
func (s *Session) PrintMenu() {
	for i, c := range commands {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, c.label)
	}
	fmt.Fprintln(s.out, "m. Show menu")
	fmt.Fprintln(s.out, "q. Quit")
}

// input prints query and returns the next trimmed line. A final line
// without a newline is still returned; io.EOF is returned only when no
// input is left.
func (s *Session) input(ctx context.Context, query string) (string, error) {
	fmt.Fprint(s.out, query)
	s.startRead.Do(func() {
		go s.readLines()
	})

	var r readResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		r = res
	}

	if r.err != nil {
		if errors.Is(r.err, io.EOF) && r.line != "" {
			return strings.TrimSpace(r.line), nil
		}
		if !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", r.err)
		}
		return "", r.err
	}
	return strings.TrimSpace(r.line), nil
}

// readLines feeds s.lines until the reader fails. A blocked read outlives
// a cancelled session; it ends with the input.
func (s *Session) readLines() {
	defer close(s.lines)
	for {
		line, err := s.in.ReadString('\n')
		s.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// record journals a command outcome. Journal failures are logged, not returned.
func (s *Session) record(command, name, path string, err error) {
	ev := logging.Event{Command: command, Name: name, Path: path, OK: err == nil}
	if err != nil {
		ev.Error = err.Error()
		s.logger.Debug("command failed", "command", command, "err", err)
	} else {
		s.logger.Debug("command done", "command", command, "tasks", s.repo.Len())
	}
	if s.recorder == nil {
		return
	}
	if rerr := s.recorder.Record(ev); rerr != nil {
		s.logger.Warn("journal write failed", "err", rerr)
	}
}
