package task

import (
	"fmt"
	"time"
)

// TimeLayout is the layout used when rendering creation timestamps.
const TimeLayout = "02-01-2006 15:04:05"

// Task is a single named entry in a task list.
type Task struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"add_time"`
}

// New returns a task created at createdAt, truncated to whole seconds.
func New(name, description string, priority Priority, createdAt time.Time) Task {
	return Task{
		Name:        name,
		Description: description,
		Priority:    priority,
		CreatedAt:   createdAt.Truncate(time.Second),
	}
}

// Render returns the two-line display form of the task:
//
//	> name | Priority | DD-MM-YYYY HH:MM:SS
//	/ description /
func (t Task) Render() string {
	return fmt.Sprintf("> %s | %s | %s\n/ %s /",
		t.Name,
		t.Priority,
		t.CreatedAt.Format(TimeLayout),
		t.Description,
	)
}

// Equal reports whether two tasks carry the same fields. Timestamps are
// compared as instants, so the same moment in different zones is equal.
func (t Task) Equal(other Task) bool {
	return t.Name == other.Name &&
		t.Description == other.Description &&
		t.Priority == other.Priority &&
		t.CreatedAt.Equal(other.CreatedAt)
}
