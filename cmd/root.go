// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/console"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/task"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs.
type app struct {
	cfg    *config.ConfigWithSources
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}

	cfg := cws.Config
	a := &app{
		cfg:    cws,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewConsoleLoggerFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// No args or a leading flag means an interactive shell.
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	a.logger.Debug("starting", "command", subcommand, "config", cws.ConfigFile())

	switch subcommand {
	case "shell":
		return a.shellCommand(ctx, remainingArgs)
	case "ls":
		return a.lsCommand(remainingArgs)
	case "show":
		return a.showCommand(remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "history":
		return a.historyCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newFlagSet returns a subcommand flag set that reports errors to stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tasklist "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// resolvePath makes a task file argument absolute, falling back to data_file.
func (a *app) resolvePath(arg string) string {
	if arg == "" {
		return a.cfg.Config.DataFile
	}
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(a.cfg.Config.ProjectRoot, arg)
}

// shellCommand runs the interactive menu session.
func (a *app) shellCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("shell")
	load := fs.String("load", "", "Task file to read before the first prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := a.cfg.Config
	repo := task.NewRepository()
	if *load != "" {
		path := a.resolvePath(*load)
		if err := repo.LoadFromFile(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		a.logger.Info("loaded tasks", "path", path, "count", repo.Len())
	}

	opts := []console.Option{
		console.WithInput(a.stdin),
		console.WithOutput(a.stdout),
		console.WithStrictPriority(cfg.StrictPriority),
		console.WithDefaultFile(cfg.DataFile),
		console.WithLogger(a.logger),
	}

	if cfg.History {
		journal, err := logging.NewSessionLogger(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			a.logger.Warn("session journal disabled", "err", err)
		} else {
			defer journal.Close()
			a.logger.Debug("journal opened", "path", journal.LogPath, "session", journal.SessionID)
			opts = append(opts, console.WithRecorder(journal))
		}
	}

	return console.NewSession(repo, opts...).Run(ctx)
}

// lsCommand prints every task of a file in insertion order.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	priorityFilter := fs.String("priority", "", "Only show tasks with this priority (low|medium|high)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := ""
	if len(remaining) == 1 {
		path = remaining[0]
	}

	var filter *task.Priority
	if *priorityFilter != "" {
		p, err := task.ParsePriority(*priorityFilter)
		if err != nil {
			return err
		}
		filter = &p
	}

	tasks, err := task.ReadFile(a.resolvePath(path))
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	printed := 0
	for _, t := range tasks {
		if filter != nil && t.Priority != *filter {
			continue
		}
		fmt.Fprintln(a.stdout, t.Render())
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(a.stdout, "No tasks found.")
	}
	return nil
}

// showCommand prints the first task with the given name.
func (a *app) showCommand(args []string) error {
	fs := a.newFlagSet("show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("usage: tasklist show <name> [file]")
	}
	if len(remaining) > 2 {
		return fmt.Errorf("unexpected arguments: %v", remaining[2:])
	}
	path := ""
	if len(remaining) == 2 {
		path = remaining[1]
	}

	tasks, err := task.ReadFile(a.resolvePath(path))
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	found := task.NewRepository(tasks...).Find(remaining[0])
	if found == nil {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, remaining[0])
	}
	fmt.Fprintln(a.stdout, found.Render())
	return nil
}

// checkCommand validates a task file against the embedded schema.
func (a *app) checkCommand(args []string) error {
	fs := a.newFlagSet("check")
	printSchema := fs.Bool("schema", false, "Print the task file JSON Schema and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *printSchema {
		fmt.Fprint(a.stdout, task.Schema())
		return nil
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := ""
	if len(remaining) == 1 {
		path = remaining[0]
	}
	path = a.resolvePath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", task.ErrFileNotExist, path)
		}
		return &task.FileError{Op: "read", Path: path, Err: err}
	}

	tasks, err := task.Decode(data)
	if err != nil {
		var verrs task.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintf(a.stdout, "%s: %d problem(s)\n", path, len(verrs))
			for _, ve := range verrs {
				fmt.Fprintf(a.stdout, "  %s\n", ve)
			}
			return fmt.Errorf("task file %s is invalid", path)
		}
		return err
	}

	fmt.Fprintf(a.stdout, "%s: OK (%d tasks)\n", path, len(tasks))
	return nil
}

// tuiCommand launches the read-only viewer.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	interval := fs.Duration("interval", time.Second, "How often to re-read the task file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := ""
	if len(remaining) == 1 {
		path = remaining[0]
	}

	return ui.RunTUI(ctx, a.resolvePath(path),
		ui.WithOutput(a.stdout),
		ui.WithRefreshInterval(*interval),
	)
}

// historyCommand tails or lists the session journals of this project.
func (a *app) historyCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history")
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List recorded sessions instead of tailing the latest")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := a.cfg.Config
	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		sessions, err := logging.FindSessions(logDir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(a.stdout, "No sessions recorded.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(a.stdout, "%s  %s\n", s.ModTime.Format(task.TimeLayout), s.ID)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(a.stdout, "No sessions recorded.")
		return nil
	}

	fmt.Fprintf(a.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(a.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(a.stdout)

	return logging.TailLog(ctx, a.stdout, logPath, *n, *follow)
}

// configCommand prints the effective configuration and its sources.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	if len(a.cfg.Files) == 0 {
		fmt.Fprintln(a.stdout, "Config files: (none)")
	} else {
		fmt.Fprintln(a.stdout, "Config files:")
		for _, f := range a.cfg.Files {
			fmt.Fprintf(a.stdout, "  %s\n", f)
		}
	}
	fmt.Fprintln(a.stdout)

	for _, field := range config.Fields() {
		fmt.Fprintf(a.stdout, "%-16s = %-30s (%s)\n", field, a.cfg.Config.Value(field), a.cfg.Sources[field])
	}
	return nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - an interactive task list manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell              Interactive menu session (default command)")
	fmt.Fprintln(w, "  ls [file]          Print all tasks of a file")
	fmt.Fprintln(w, "  show <name> [file] Print one task by name")
	fmt.Fprintln(w, "  check [file]       Validate a task file")
	fmt.Fprintln(w, "  tui [file]         Launch terminal viewer")
	fmt.Fprintln(w, "  history            Tail the latest session journal")
	fmt.Fprintln(w, "  config             Show effective configuration")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shell Options:")
	fmt.Fprintln(w, "  -load string")
	fmt.Fprintln(w, "        Task file to read before the first prompt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Only show tasks with this priority (low|medium|high)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Options:")
	fmt.Fprintln(w, "  -schema")
	fmt.Fprintln(w, "        Print the task file JSON Schema and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List recorded sessions")
}
