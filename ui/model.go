// Package ui is the interactive terminal client for the task API.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-manager/client"
	"task-manager/models"
)

const (
	// ToastDuration is how long a toast stays on screen.
	ToastDuration = 3 * time.Second
	// DefaultRequestTimeout bounds each API call made by the model.
	DefaultRequestTimeout = 10 * time.Second
	// CreatedAtLayout renders task timestamps.
	CreatedAtLayout = "Jan 2, 2006, 03:04 PM"
)

// User-facing texts.
const (
	msgFetchFailed   = "Failed to fetch tasks"
	msgCreateFailed  = "Failed to create task"
	msgDeleteFailed  = "Failed to delete task"
	msgTaskAdded     = "Task added successfully!"
	msgTaskDeleted   = "Task deleted successfully!"
	msgEmptyTitle    = "Please enter a task title"
	msgConfirmDelete = "Are you sure you want to delete this task? (y/n)"
	msgLoading       = "Loading tasks..."
	msgNoTasks       = "No tasks yet. Add one above!"
)

// TaskService is the subset of the API client the model needs.
type TaskService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) (*models.Task, error)
}

var _ TaskService = (*client.Client)(nil)

type focus int

const (
	focusInput focus = iota
	focusList
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	id   int
	text string
	kind toastKind
}

type (
	tasksLoadedMsg struct {
		tasks []models.Task
		err   error
	}
	taskCreatedMsg struct {
		task *models.Task
		err  error
	}
	taskDeletedMsg struct {
		id  string
		err error
	}
	toastExpiredMsg struct{ id int }
)

// Model is the bubbletea model for the task list screen.
type Model struct {
	svc     TaskService
	timeout time.Duration
	keys    keyMap

	input   textinput.Model
	spinner spinner.Model
	focus   focus
	width   int

	tasks    []models.Task
	selected int

	// loading covers both the initial fetch and a create in flight.
	loading    bool
	deletingID string
	confirmID  string
	err        string

	toast    *toast
	toastSeq int
}

// New returns a model that fetches the task list on Init.
func New(svc TaskService) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a new task..."
	ti.Prompt = "> "
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		svc:     svc,
		timeout: DefaultRequestTimeout,
		keys:    defaultKeyMap(),
		input:   ti,
		spinner: sp,
		focus:   focusInput,
		loading: true,
	}
}

// WithTimeout sets the per-request timeout.
func (m Model) WithTimeout(d time.Duration) Model {
	if d > 0 {
		m.timeout = d
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.spinner.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.ErrorMessage(msg.err, msgFetchFailed)
			cmd := m.showToast(m.err, toastError)
			return m, cmd
		}
		m.err = ""
		m.tasks = msg.tasks
		m.clampSelection()
		return m, nil

	case taskCreatedMsg:
		m.loading = false
		if msg.err != nil || msg.task == nil {
			m.err = client.ErrorMessage(msg.err, msgCreateFailed)
			cmd := m.showToast(m.err, toastError)
			return m, cmd
		}
		m.err = ""
		m.tasks = append([]models.Task{*msg.task}, m.tasks...)
		m.input.Reset()
		m.clampSelection()
		cmd := m.showToast(msgTaskAdded, toastSuccess)
		return m, cmd

	case taskDeletedMsg:
		if m.deletingID == msg.id {
			m.deletingID = ""
		}
		if msg.err != nil {
			m.err = client.ErrorMessage(msg.err, msgDeleteFailed)
			cmd := m.showToast(m.err, toastError)
			return m, cmd
		}
		m.err = ""
		m.removeTask(msg.id)
		cmd := m.showToast(msgTaskDeleted, toastSuccess)
		return m, cmd

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQ) {
		return m, tea.Quit
	}

	if m.confirmID != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.confirmID
			m.confirmID = ""
			m.deletingID = id
			return m, m.deleteTask(id)
		case key.Matches(msg, m.keys.Cancel):
			m.confirmID = ""
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Focus) {
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selectedTask(); ok && task.ID != m.deletingID {
			m.confirmID = task.ID
		}
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	title := strings.TrimSpace(m.input.Value())
	if title == "" {
		cmd := m.showToast(msgEmptyTitle, toastError)
		return m, cmd
	}
	if models.TitleLength(title) > models.TitleMaxLength {
		cmd := m.showToast(models.ErrTitleTooLong.Error(), toastError)
		return m, cmd
	}
	m.loading = true
	m.err = ""
	return m, m.createTask(title)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) showToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, text: text, kind: kind}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) removeTask(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
			break
		}
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedTask() (models.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m Model) loadTasks() tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks, err := svc.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) createTask(title string) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		task, err := svc.CreateTask(ctx, title)
		return taskCreatedMsg{task: task, err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := svc.DeleteTask(ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}

// FormatCreatedAt renders t in local time for the task list.
func FormatCreatedAt(t time.Time) string {
	return t.Local().Format(CreatedAtLayout)
}
