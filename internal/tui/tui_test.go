package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTaskID(t *testing.T) {
	ids := []TaskID{TaskLoad, TaskResolve, TaskScreen, TaskMerge}
	seen := make(map[TaskID]bool)

	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate task ID: %d", id)
		}
		seen[id] = true
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(TaskScreen, "Screening profiles", "profiles")

	if task.ID != TaskScreen {
		t.Errorf("expected ID %d, got %d", TaskScreen, task.ID)
	}
	if task.Name != "Screening profiles" || task.Unit != "profiles" {
		t.Errorf("unexpected task %+v", task)
	}
	if task.Status != StatusPending {
		t.Errorf("expected status %d, got %d", StatusPending, task.Status)
	}
}

func TestSendEvent(t *testing.T) {
	ch := make(chan Event, 1)

	SendEvent(ch, TaskEvent{Task: TaskLoad, Status: StatusComplete})

	select {
	case received := <-ch:
		te, ok := received.(TaskEvent)
		if !ok {
			t.Fatal("expected TaskEvent type")
		}
		if te.Task != TaskLoad {
			t.Errorf("expected task %d, got %d", TaskLoad, te.Task)
		}
	default:
		t.Error("expected event in channel")
	}
}

func TestSendEventNilAndFullChannel(t *testing.T) {
	SendEvent(nil, TaskEvent{})

	ch := make(chan Event, 1)
	SendEvent(ch, DoneEvent{})
	// a full channel drops instead of blocking
	SendEvent(ch, DoneEvent{})
	if len(ch) != 1 {
		t.Errorf("expected 1 buffered event, got %d", len(ch))
	}
}

func TestSendTaskEvent(t *testing.T) {
	ch := make(chan Event, 1)
	testErr := errors.New("boom")

	SendTaskEvent(ch, TaskScreen, StatusRunning,
		WithMessage("3/4"),
		WithCount(3),
		WithProgress(0.75),
		WithError(testErr),
	)

	te := (<-ch).(TaskEvent)
	if te.Task != TaskScreen || te.Message != "3/4" || te.Count != 3 || te.Progress != 0.75 || te.Error != testErr {
		t.Errorf("unexpected event %+v", te)
	}
}

func TestModelUpdatesTasks(t *testing.T) {
	events := make(chan Event)
	m := NewModel(events, WithTitle("applicants.csv"))

	updated, _ := m.Update(TaskEvent{Task: TaskLoad, Status: StatusComplete, Count: 12})
	m = updated.(Model)
	updated, _ = m.Update(TaskEvent{Task: TaskScreen, Status: StatusRunning, Progress: 0.5, Message: "2/4"})
	m = updated.(Model)

	if m.tasks[0].Status != StatusComplete || m.tasks[0].Count != 12 {
		t.Errorf("load task = %+v", m.tasks[0])
	}
	if m.tasks[2].Progress != 0.5 {
		t.Errorf("screen task = %+v", m.tasks[2])
	}

	view := m.View()
	for _, want := range []string{"applicants.csv", "Loading applicants", "(12 applicants)", "2/4", "Ctrl+C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelWithTasks(t *testing.T) {
	m := NewModel(nil, WithTasks([]Task{NewTask(TaskScreen, "Screening only", "profiles")}))

	updated, _ := m.Update(TaskEvent{Task: TaskLoad, Status: StatusComplete, Count: 3})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "Screening only") {
		t.Errorf("view missing custom task:\n%s", view)
	}
	if strings.Contains(view, "Loading applicants") {
		t.Errorf("default tasks should be replaced:\n%s", view)
	}
}

func TestModelRateLimitWarning(t *testing.T) {
	m := NewModel(make(chan Event))

	updated, _ := m.Update(RateLimitEvent{Limited: true, ResetAt: time.Now().Add(time.Hour)})
	m = updated.(Model)

	if !strings.Contains(m.View(), "Rate limited") {
		t.Errorf("expected rate limit warning:\n%s", m.View())
	}
}

func TestModelQuitsWhenDone(t *testing.T) {
	m := NewModel(make(chan Event))

	updated, cmd := m.Update(DoneEvent{})
	m = updated.(Model)

	if !m.done {
		t.Error("expected model to be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if strings.Contains(m.View(), "Ctrl+C") {
		t.Error("cancel hint should be hidden once done")
	}
}

func TestWaitForEventClosedChannel(t *testing.T) {
	ch := make(chan Event)
	close(ch)

	if _, ok := waitForEvent(ch)().(doneMsg); !ok {
		t.Error("closed channel should produce doneMsg")
	}
}

func TestStatusIcon(t *testing.T) {
	statuses := []TaskStatus{StatusPending, StatusRunning, StatusComplete, StatusError, StatusSkipped}

	for _, status := range statuses {
		if StatusIcon(status, ">") == "" {
			t.Errorf("StatusIcon returned empty string for status %d", status)
		}
	}
}

func TestShouldUseTUIInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if ShouldUseTUI() {
		t.Error("expected TUI to be disabled in CI")
	}
}
