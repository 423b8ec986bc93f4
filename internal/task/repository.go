package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// createFile opens a new task file for writing. It fails if path exists.
var createFile = func(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Repository owns an ordered list of tasks. Insertion order is display order.
// A Repository is not safe for concurrent use.
type Repository struct {
	tasks []Task
}

// NewRepository returns a repository holding tasks in the given order.
func NewRepository(tasks ...Task) *Repository {
	r := &Repository{}
	r.tasks = append(r.tasks, tasks...)
	return r
}

// Add appends a task. Names are not checked for uniqueness.
func (r *Repository) Add(task Task) {
	r.tasks = append(r.tasks, task)
}

// FindIndex returns the position of the first task named name.
func (r *Repository) FindIndex(name string) (int, bool) {
	for i := range r.tasks {
		if r.tasks[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Find returns the first task named name, or nil if none matches.
// The pointer is only valid until the repository is next modified.
func (r *Repository) Find(name string) *Task {
	if i, ok := r.FindIndex(name); ok {
		return &r.tasks[i]
	}
	return nil
}

// Edit replaces every field of the first task named name, including the
// name itself, keeping its position.
func (r *Repository) Edit(name string, replacement Task) error {
	i, ok := r.FindIndex(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	r.tasks[i] = replacement
	return nil
}

// Remove deletes the first task named name.
func (r *Repository) Remove(name string) error {
	i, ok := r.FindIndex(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// List returns a copy of all tasks in insertion order.
func (r *Repository) List() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Len returns the number of tasks.
func (r *Repository) Len() int {
	return len(r.tasks)
}

// SaveToFile writes every task to a new file at path as one JSON array.
// It fails with ErrFileExists if anything is already at path and leaves it
// untouched. A failed write removes the partially written file.
func (r *Repository) SaveToFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &FileError{Op: "stat", Path: path, Err: err}
	}

	data, err := Encode(r.tasks)
	if err != nil {
		return err
	}

	f, err := createFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return &FileError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// LoadFromFile replaces the repository contents with the tasks stored at
// path. Nothing is replaced unless the whole file reads and validates.
func (r *Repository) LoadFromFile(path string) error {
	tasks, err := ReadFile(path)
	if err != nil {
		return err
	}
	r.tasks = tasks
	return nil
}

// ReadFile reads and validates the task file at path.
func ReadFile(path string) ([]Task, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotExist, path)
		}
		return nil, &FileError{Op: "stat", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return Decode(data)
}

// Encode serializes tasks as a single JSON array. A nil slice encodes as [].
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode validates data against the task schema and parses it.
// Timestamps are truncated to whole seconds and converted to local time.
func Decode(data []byte) ([]Task, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		tasks[i].CreatedAt = tasks[i].CreatedAt.Truncate(time.Second).Local()
	}
	return tasks, nil
}
