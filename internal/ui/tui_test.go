package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/task"
)

func writeTaskFile(t *testing.T, tasks ...task.Task) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := task.NewRepository(tasks...).SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	return path
}

func sampleTasks() []task.Task {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)
	return []task.Task{
		task.New("Buy milk", "2%", task.PriorityLow, at),
		task.New("Pay rent", "before Friday", task.PriorityHigh, at),
		task.New("Call mom", "", task.PriorityHigh, at),
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRunTUIRequiresTTY(t *testing.T) {
	err := RunTUI(context.Background(), "tasks.json", WithOutput(&bytes.Buffer{}))
	if !errors.Is(err, ErrNotTTY) {
		t.Fatalf("RunTUI: got %v, want ErrNotTTY", err)
	}
}

func TestModelOverview(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks()...), time.Second)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a tick")
	}

	view := m.View()
	for _, want := range []string{
		"Tasklist",
		"Total: 3  Low: 1  Medium: 0  High: 2",
		"> Low    Buy milk",
		"  High   Pay rent",
		"> Buy milk | Low | 05-03-2024 14:07:09",
		"Refreshing every 1s",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q\n%s", want, view)
		}
	}
}

func TestModelFilter(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks()...), time.Second)
	m.Init()

	m.Update(key("3"))
	view := m.View()
	if !strings.Contains(view, "Filter: High (0 to clear)") {
		t.Errorf("filter indicator missing\n%s", view)
	}
	if strings.Contains(view, "Buy milk") {
		t.Errorf("low task shown under high filter\n%s", view)
	}
	if !strings.Contains(view, "Call mom") {
		t.Errorf("high task missing under high filter\n%s", view)
	}

	m.Update(key("2"))
	if !strings.Contains(m.View(), "No tasks found.") {
		t.Errorf("medium filter should show no tasks\n%s", m.View())
	}

	m.Update(key("0"))
	if m.filter != nil || !strings.Contains(m.View(), "Buy milk") {
		t.Errorf("clearing the filter should show all tasks\n%s", m.View())
	}
}

func TestModelCursor(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks()...), time.Second)
	m.Init()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(key("j"))
	m.Update(key("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor: got %d, want 2", m.cursor)
	}
	if !strings.Contains(m.View(), "> Call mom | High |") {
		t.Errorf("selected task not rendered\n%s", m.View())
	}

	m.Update(key("k"))
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
}

func TestModelRefresh(t *testing.T) {
	path := writeTaskFile(t, sampleTasks()...)
	m := newTUIModel(path, time.Second)
	m.Init()
	m.cursor = 2

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := task.NewRepository(sampleTasks()[0]).SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(m.tasks) != 1 {
		t.Fatalf("tasks after refresh: got %d, want 1", len(m.tasks))
	}
	if m.cursor != 0 {
		t.Errorf("cursor should be clamped, got %d", m.cursor)
	}
}

func TestModelLoadError(t *testing.T) {
	m := newTUIModel(filepath.Join(t.TempDir(), "missing.json"), time.Second)
	m.Init()

	if !errors.Is(m.loadErr, task.ErrFileNotExist) {
		t.Fatalf("loadErr: got %v", m.loadErr)
	}
	if !strings.Contains(m.View(), "Error loading task file:") {
		t.Errorf("view missing load error\n%s", m.View())
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := newTUIModel(writeTaskFile(t), time.Second)
	m.Init()

	m.Update(key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help not shown\n%s", m.View())
	}
	m.Update(key("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help should toggle off\n%s", m.View())
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
