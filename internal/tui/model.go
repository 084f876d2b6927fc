package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the TUI progress display.
type Model struct {
	tasks          []Task
	spinner        spinner.Model
	progress       progress.Model
	events         <-chan Event
	done           bool
	title          string
	windowWidth    int
	rateLimited    bool
	rateLimitReset time.Time
}

// doneMsg signals that all events have been processed.
type doneMsg struct{}

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*Model)

// WithTasks sets the tasks to display in the TUI.
func WithTasks(tasks []Task) ModelOption {
	return func(m *Model) {
		m.tasks = tasks
	}
}

// WithTitle sets the heading shown above the tasks.
func WithTitle(title string) ModelOption {
	return func(m *Model) {
		m.title = title
	}
}

// DefaultTasks returns the task list of a screening run.
func DefaultTasks() []Task {
	return []Task{
		NewTask(TaskLoad, "Loading applicants", "applicants"),
		NewTask(TaskResolve, "Resolving identities", "usernames"),
		NewTask(TaskScreen, "Screening profiles", "profiles"),
		NewTask(TaskMerge, "Building report", "records"),
	}
}

// NewModel creates a new TUI model.
func NewModel(events <-chan Event, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#60a5fa", "#1e3a8a"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	m := Model{
		tasks:    DefaultTasks(),
		spinner:  s,
		progress: p,
		events:   events,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case TaskEvent:
		var cmd tea.Cmd
		m, cmd = m.updateTask(msg)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case RateLimitEvent:
		m.rateLimited = msg.Limited
		m.rateLimitReset = msg.ResetAt
		return m, waitForEvent(m.events)

	case DoneEvent, doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// updateTask updates a task based on a TaskEvent.
func (m Model) updateTask(e TaskEvent) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for i := range m.tasks {
		if m.tasks[i].ID != e.Task {
			continue
		}
		t := &m.tasks[i]
		t.Status = e.Status
		t.Message = e.Message
		if e.Count > 0 {
			t.Count = e.Count
		}
		if e.Progress > 0 {
			t.Progress = e.Progress
			cmd = m.progress.SetPercent(e.Progress)
		}
		if e.Error != nil {
			t.Error = e.Error
		}
		break
	}
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	var s string

	if m.title != "" {
		s += "  " + headerStyle.Render(m.title) + "\n"
	}

	for _, task := range m.tasks {
		s += task.View(m.spinner.View(), m.progress) + "\n"
	}

	if m.rateLimited {
		msg := "\n  Rate limited - remaining profiles are reported as rate_limited"
		if d := time.Until(m.rateLimitReset).Round(time.Second); d > 0 {
			msg += fmt.Sprintf(" (resets in %s)", d)
		}
		s += warnStyle.Render(msg) + "\n"
	}

	// Only show cancel hint while running
	if !m.done {
		s += footerStyle.Render("\n  Press Ctrl+C to cancel")
	}
	s += "\n"

	return s
}

// waitForEvent creates a command that waits for the next event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}
