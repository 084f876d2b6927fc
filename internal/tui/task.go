package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// Task represents a single task in the TUI progress display.
type Task struct {
	ID       TaskID
	Name     string
	Unit     string // noun shown after Count, e.g. "applicants"
	Status   TaskStatus
	Message  string
	Count    int
	Progress float64
	Error    error
}

// NewTask creates a new task with the given ID, name and count unit.
func NewTask(id TaskID, name, unit string) Task {
	return Task{
		ID:     id,
		Name:   name,
		Unit:   unit,
		Status: StatusPending,
	}
}

// View renders the task as a string.
func (t Task) View(spinnerFrame string, prog progress.Model) string {
	icon := StatusIcon(t.Status, spinnerFrame)

	name := taskNameStyle.Render(t.Name)
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	}

	line := fmt.Sprintf("  %s %s", icon, name)

	switch {
	case t.Status == StatusRunning && t.Progress > 0:
		line += fmt.Sprintf(" %s %d%%", prog.ViewAs(t.Progress), int(t.Progress*100))
		if t.Message != "" {
			line += " " + messageStyle.Render(fmt.Sprintf("(%s)", t.Message))
		}
	case t.Message != "":
		line += " " + messageStyle.Render(t.Message)
	case t.Status == StatusComplete && t.Unit != "":
		line += " " + messageStyle.Render(fmt.Sprintf("(%d %s)", t.Count, t.Unit))
	}

	if t.Error != nil {
		line += " " + errorStyle.Render(t.Error.Error())
	}

	return line
}
