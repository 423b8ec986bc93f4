package task

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Priorities returns every priority in declaration order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// String returns the priority tag used in task files and rendered output.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority maps a tag such as "High" or "high" to its priority.
// Surrounding whitespace is ignored. Anything else yields ErrInvalidPriority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityLow, fmt.Errorf("%w %q, must be one of: Low, Medium, High", ErrInvalidPriority, s)
	}
}

// MarshalText encodes the priority as its tag.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a tag written by MarshalText. Tags are matched
// exactly; files always carry the canonical spelling.
func (p *Priority) UnmarshalText(text []byte) error {
	for _, candidate := range Priorities() {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrInvalidPriority, string(text))
}
