package task

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when no task has the requested name.
	ErrTaskNotFound = errors.New("task not found")
	// ErrFileExists is returned when a save target is already present.
	ErrFileExists = errors.New("file already exists")
	// ErrFileNotExist is returned when a load source is absent.
	ErrFileNotExist = errors.New("file does not exist")
	// ErrInvalidPriority is returned for an unknown priority tag.
	ErrInvalidPriority = errors.New("invalid priority")
)

// FileError records a failed file system operation on a task file.
type FileError struct {
	Op   string // "create", "write", "read", ...
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// ValidationError represents a schema violation with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every schema violation found in a task file.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "invalid task file"
	case 1:
		return "invalid task file: " + v[0].Error()
	default:
		return fmt.Sprintf("invalid task file: %s (and %d more)", v[0].Error(), len(v)-1)
	}
}
