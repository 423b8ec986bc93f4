package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nibzard/tasklist-go/internal/task"
)

var errEmptyName = errors.New("task name must not be empty")

type command struct {
	name  string // journal name
	label string // menu label
	run   func(*Session, context.Context) error
}

// commands is the numbered menu; index i is selected by code i+1.
var commands = []command{
	{"add", "Add task", (*Session).addTask},
	{"find", "Find task", (*Session).findTask},
	{"edit", "Edit task", (*Session).editTask},
	{"remove", "Remove task", (*Session).removeTask},
	{"list", "Print list tasks", (*Session).listTasks},
	{"save", "Store tasks to file", (*Session).saveTasks},
	{"load", "Read tasks from file", (*Session).loadTasks},
}

// Execute runs the command selected by code and prints its outcome.
// Command failures are printed and journaled, not returned. The returned
// error is ErrQuit for the quit code, io.EOF when input ends in the middle
// of a command, or a read failure.
func (s *Session) Execute(code string) error {
	return s.ExecuteContext(context.Background(), code)
}

// ExecuteContext is Execute with a context that interrupts pending reads.
func (s *Session) ExecuteContext(ctx context.Context, code string) error {
	switch code {
	case "m", "0":
		s.PrintMenu()
		return nil
	case "q", "quit", "exit":
		return ErrQuit
	}

	n, err := strconv.Atoi(code)
	if err != nil || n < 1 || n > len(commands) {
		s.println("Invalid command")
		s.logger.Debug("invalid command", "code", code)
		return nil
	}
	return commands[n-1].run(s, ctx)
}

func (s *Session) addTask(ctx context.Context) error {
	t, err := s.readTask(ctx)
	if err != nil {
		return s.rejectInput("add", "", err)
	}
	s.repo.Add(t)
	s.println(task.AddedMessage(t.Name))
	s.record("add", t.Name, "", nil)
	return nil
}

func (s *Session) findTask(ctx context.Context) error {
	name, err := s.input(ctx, "Enter task name: ")
	if err != nil {
		return err
	}
	found := s.repo.Find(name)
	if found == nil {
		s.println(task.NotFoundMessage(name))
		s.record("find", name, "", fmt.Errorf("%w: %s", task.ErrTaskNotFound, name))
		return nil
	}
	s.println("Task found.")
	s.println(found.Render())
	s.record("find", name, "", nil)
	return nil
}

func (s *Session) editTask(ctx context.Context) error {
	name, err := s.input(ctx, "Enter task name: ")
	if err != nil {
		return err
	}
	if _, ok := s.repo.FindIndex(name); !ok {
		s.println(task.NotFoundMessage(name))
		s.record("edit", name, "", fmt.Errorf("%w: %s", task.ErrTaskNotFound, name))
		return nil
	}

	replacement, err := s.readTask(ctx)
	if err != nil {
		return s.rejectInput("edit", name, err)
	}
	if err := s.repo.Edit(name, replacement); err != nil {
		s.println(task.NotFoundMessage(name))
		s.record("edit", name, "", err)
		return nil
	}
	s.println(task.UpdatedMessage(name))
	s.record("edit", name, "", nil)
	return nil
}

func (s *Session) removeTask(ctx context.Context) error {
	name, err := s.input(ctx, "Enter task name: ")
	if err != nil {
		return err
	}
	if err := s.repo.Remove(name); err != nil {
		s.println(task.NotFoundMessage(name))
		s.record("remove", name, "", err)
		return nil
	}
	s.println(task.RemovedMessage(name))
	s.record("remove", name, "", nil)
	return nil
}

func (s *Session) listTasks(ctx context.Context) error {
	tasks := s.repo.List()
	if len(tasks) == 0 {
		s.println("No tasks found.")
	}
	for _, t := range tasks {
		s.println(t.Render())
	}
	s.record("list", "", "", nil)
	return nil
}

func (s *Session) saveTasks(ctx context.Context) error {
	path, err := s.readFileName(ctx, "Enter file name to store data in: ")
	if err != nil {
		return err
	}
	if path == "" {
		s.println("File name must not be empty")
		return nil
	}
	if err := s.repo.SaveToFile(path); err != nil {
		s.println(describeFileError(path, err))
		s.record("save", "", path, err)
		return nil
	}
	s.println(task.SavedMessage)
	s.record("save", "", path, nil)
	return nil
}

func (s *Session) loadTasks(ctx context.Context) error {
	path, err := s.readFileName(ctx, "Enter file name to read data from: ")
	if err != nil {
		return err
	}
	if path == "" {
		s.println("File name must not be empty")
		return nil
	}
	if err := s.repo.LoadFromFile(path); err != nil {
		s.println(describeFileError(path, err))
		s.record("load", "", path, err)
		return nil
	}
	s.println(task.LoadedMessage)
	s.record("load", "", path, nil)
	return nil
}

// readTask prompts for the fields of a new task stamped with the current time.
func (s *Session) readTask(ctx context.Context) (task.Task, error) {
	name, err := s.input(ctx, "Enter task name: ")
	if err != nil {
		return task.Task{}, err
	}
	if name == "" {
		return task.Task{}, errEmptyName
	}
	description, err := s.input(ctx, "Enter task description: ")
	if err != nil {
		return task.Task{}, err
	}
	raw, err := s.input(ctx, "Enter task priority (low|medium|high): ")
	if err != nil {
		return task.Task{}, err
	}
	priority, err := s.parsePriority(raw)
	if err != nil {
		return task.Task{}, err
	}
	return task.New(name, description, priority, s.now()), nil
}

func (s *Session) parsePriority(raw string) (task.Priority, error) {
	p, err := task.ParsePriority(raw)
	if err == nil {
		return p, nil
	}
	if s.strictPriority {
		return p, err
	}
	s.println("Invalid priority, setting to low.")
	return task.PriorityLow, nil
}

// rejectInput prints validation failures from readTask and passes read
// failures through.
func (s *Session) rejectInput(command, name string, err error) error {
	switch {
	case errors.Is(err, errEmptyName):
		s.println("Task name must not be empty")
	case errors.Is(err, task.ErrInvalidPriority):
		s.printf("Invalid priority: %v\n", err)
	default:
		return err
	}
	s.record(command, name, "", err)
	return nil
}

func (s *Session) readFileName(ctx context.Context, query string) (string, error) {
	path, err := s.input(ctx, query)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = s.defaultFile
	}
	return path, nil
}

// describeFileError turns a save or load failure into a user-facing message.
func describeFileError(path string, err error) string {
	var fe *task.FileError
	var verrs task.ValidationErrors
	switch {
	case errors.Is(err, task.ErrFileExists):
		return fmt.Sprintf("File %s already exists", path)
	case errors.Is(err, task.ErrFileNotExist):
		return fmt.Sprintf("File %s does not exist", path)
	case errors.As(err, &verrs):
		return fmt.Sprintf("Error reading data: %v", err)
	case errors.As(err, &fe):
		switch fe.Op {
		case "create":
			return fmt.Sprintf("Error creating file: %v", fe.Err)
		case "write", "close":
			return fmt.Sprintf("Error saving data: %v", fe.Err)
		default:
			return fmt.Sprintf("Error reading file: %v", fe.Err)
		}
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
