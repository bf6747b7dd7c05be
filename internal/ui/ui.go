package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/taskboard/internal/board"
	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/services"
	"github.com/desertthunder/taskboard/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AuthView ViewState = iota
	BoardView
	WeeksView
	ActivityView
	FormView
)

// formField indexes the inputs of the create form.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldCategory
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	client *services.TasksClient
	view   ViewState
	width  int
	height int

	keyPath  string
	keyInput textinput.Model

	tasks       []models.Task
	lastUpdated string
	stats       board.Stats
	columns     []board.Column
	weeks       []board.Week
	expanded    map[int]bool
	feed        []models.Task

	col int
	row int
	cur int

	titleInput textinput.Model
	descInput  textinput.Model
	field      formField
	category   int

	flash string
	err   error
	help  help.Model
	keys  keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// apiKey may be empty, in which case the auth prompt is shown first.
func NewModel(ctx context.Context, client *services.TasksClient, apiKey, keyPath string) *Model {
	keyInput := textinput.New()
	keyInput.Placeholder = "API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.Focus()

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"

	descInput := textinput.New()
	descInput.Placeholder = "Description (optional)"

	view := AuthView
	if apiKey != "" {
		client.SetKey(apiKey)
		view = BoardView
	}

	return &Model{
		ctx:        ctx,
		client:     client,
		view:       view,
		keyPath:    keyPath,
		keyInput:   keyInput,
		titleInput: titleInput,
		descInput:  descInput,
		expanded:   map[int]bool{},
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init fetches tasks immediately when a key is already stored.
func (m *Model) Init() tea.Cmd {
	if m.view == BoardView {
		return m.fetchTasks()
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AuthView:
			return m.handleAuthKeys(msg)
		case BoardView:
			return m.handleBoardKeys(msg)
		case WeeksView:
			return m.handleWeeksKeys(msg)
		case ActivityView:
			return m.handleActivityKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		}

	case keyCheckedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, shared.ErrUnauthorized) {
				m.flash = "Key rejected, try again"
			} else {
				m.flash = msg.err.Error()
			}
			return m, nil
		}
		if m.keyPath != "" {
			// Best effort; an unsaved key only means re-entering it next run.
			_ = SaveKey(m.keyPath, msg.apiKey)
		}
		m.client.SetKey(msg.apiKey)
		m.flash = ""
		m.view = BoardView
		return m, m.fetchTasks()

	case tasksFetchedMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.setTasks(msg.list)
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.flash = ""
		return m, m.fetchTasks()

	case taskRemovedMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.flash = "Deleted " + msg.task.Title
		return m, m.fetchTasks()
	}

	return m, nil
}

// handleRequestError routes a failed API call. An auth failure clears the
// stored key and returns to the prompt; everything else is shown in place.
func (m *Model) handleRequestError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, shared.ErrUnauthorized) {
		if m.keyPath != "" {
			_ = ClearKey(m.keyPath)
		}
		m.client.SetKey("")
		m.keyInput.SetValue("")
		m.flash = "Session expired, enter the API key"
		m.view = AuthView
		return m, textinput.Blink
	}

	m.err = err
	return m, nil
}

// setTasks recomputes every derived view from a fresh task list.
func (m *Model) setTasks(list *services.TaskList) {
	m.err = nil
	m.tasks = list.Tasks
	m.lastUpdated = list.LastUpdated
	m.stats = board.Summarize(list.Tasks)
	m.columns = board.Columns(list.Tasks)
	m.weeks = board.GroupByWeek(list.Tasks, timeNow())
	m.feed = board.RecentActivity(list.Tasks)

	if len(m.expanded) == 0 && len(m.weeks) > 0 {
		m.expanded[0] = true
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col >= 0 && m.col < len(m.columns) {
		if max := len(m.columns[m.col].Tasks) - 1; m.row > max {
			m.row = max
		}
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.cur >= len(m.weeks) {
		m.cur = len(m.weeks) - 1
	}
	if m.cur < 0 {
		m.cur = 0
	}
}

// selectedTask returns the card under the cursor, or nil for an empty lane.
func (m *Model) selectedTask() *models.Task {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	lane := m.columns[m.col].Tasks
	if m.row < 0 || m.row >= len(lane) {
		return nil
	}
	return &lane[m.row]
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		apiKey := m.keyInput.Value()
		if apiKey == "" {
			m.flash = "Enter a key"
			return m, nil
		}
		return m, m.checkKey(apiKey)
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.row--
		m.clampCursor()
	case "down", "j":
		m.row++
		m.clampCursor()
	case "left", "h":
		m.col--
		m.clampCursor()
	case "right", "l":
		m.col++
		m.clampCursor()
	case "[":
		return m.moveSelected(-1)
	case "]":
		return m.moveSelected(1)
	case "d":
		if task := m.selectedTask(); task != nil {
			return m, m.deleteTask(task.ID)
		}
	case "n":
		m.openForm()
		return m, textinput.Blink
	case "r":
		return m, m.fetchTasks()
	case "w":
		m.view = WeeksView
	case "a":
		m.view = ActivityView
	}
	return m, nil
}

// moveSelected shifts the card under the cursor one column over, which is a
// status change on the server.
func (m *Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}

	target := m.col + delta
	if target < 0 || target >= len(m.columns) {
		return m, nil
	}

	return m, m.setStatus(task.ID, m.columns[target].Status)
}

func (m *Model) handleWeeksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "b":
		m.view = BoardView
	case "up", "k":
		m.cur--
		m.clampCursor()
	case "down", "j":
		m.cur++
		m.clampCursor()
	case "enter", " ":
		m.expanded[m.cur] = !m.expanded[m.cur]
	case "a":
		m.view = ActivityView
	case "r":
		return m, m.fetchTasks()
	}
	return m, nil
}

func (m *Model) handleActivityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "b":
		m.view = BoardView
	case "w":
		m.view = WeeksView
	case "r":
		return m, m.fetchTasks()
	}
	return m, nil
}

func (m *Model) openForm() {
	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.titleInput.Focus()
	m.descInput.Blur()
	m.field = fieldTitle
	m.category = 0
	m.view = FormView
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BoardView
		return m, nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.field = (m.field + 1) % 3
		} else {
			m.field = (m.field + 2) % 3
		}
		m.titleInput.Blur()
		m.descInput.Blur()
		switch m.field {
		case fieldTitle:
			m.titleInput.Focus()
		case fieldDescription:
			m.descInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		title := m.titleInput.Value()
		if title == "" {
			m.flash = "Title is required"
			return m, nil
		}
		m.view = BoardView
		return m, m.createTask(services.TaskCreate{
			Title:       title,
			Description: m.descInput.Value(),
			Category:    string(models.Categories()[m.category]),
		})
	case "left", "right":
		if m.field == fieldCategory {
			count := len(models.Categories())
			if msg.String() == "left" {
				m.category = (m.category + count - 1) % count
			} else {
				m.category = (m.category + 1) % count
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) checkKey(apiKey string) tea.Cmd {
	return func() tea.Msg {
		probe := services.NewTasksClient(m.client.BaseURL(), apiKey)
		return keyCheckedMsg{apiKey: apiKey, err: probe.Probe(m.ctx)}
	}
}

func (m *Model) fetchTasks() tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.List(m.ctx)
		return tasksFetchedMsg{list: list, err: err}
	}
}

func (m *Model) createTask(create services.TaskCreate) tea.Cmd {
	return func() tea.Msg {
		task, err := m.client.Create(m.ctx, create)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *Model) setStatus(id string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		task, err := m.client.SetStatus(m.ctx, id, status)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.client.Delete(m.ctx, id)
		return taskRemovedMsg{task: task, err: err}
	}
}
