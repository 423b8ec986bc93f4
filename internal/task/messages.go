package task

import "fmt"

// Messages reported to the user when a repository operation succeeds.
const (
	SavedMessage  = "Success"
	LoadedMessage = "Data read successfully"
)

// AddedMessage reports a task appended by Add.
func AddedMessage(name string) string {
	return fmt.Sprintf("Task %s is added", name)
}

// UpdatedMessage reports a task replaced by Edit.
func UpdatedMessage(name string) string {
	return fmt.Sprintf("Task %s is updated", name)
}

// RemovedMessage reports a task deleted by Remove.
func RemovedMessage(name string) string {
	return fmt.Sprintf("Task %s is removed", name)
}

// NotFoundMessage reports a name that matched no task.
func NotFoundMessage(name string) string {
	return fmt.Sprintf("Task %s not found", name)
}
