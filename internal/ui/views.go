package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/taskboard/internal/models"
)

// timeNow is swapped in tests to pin the current ISO week.
var timeNow = time.Now

// columnTitles maps kanban lanes to their headings.
var columnTitles = map[models.Status]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusDone:       "Done",
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case AuthView:
		return m.renderAuth()
	case BoardView:
		return m.renderBoard()
	case WeeksView:
		return m.renderWeeks()
	case ActivityView:
		return m.renderActivity()
	case FormView:
		return m.renderForm()
	default:
		return ""
	}
}

func (m *Model) renderFlash() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.flash != "" {
		return styles.warn.Render(m.flash)
	}
	return ""
}

func (m *Model) renderAuth() string {
	title := styles.title.Render("Task Dashboard")
	prompt := "Enter the API key to connect:\n\n" + m.keyInput.View()

	enterKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect"))
	helpView := m.help.ShortHelpView([]key.Binding{enterKey, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, prompt, m.renderFlash(), helpView)
}

func (m *Model) renderBoard() string {
	title := styles.title.Render(fmt.Sprintf(
		"Task Board  %d total · %d todo · %d in progress · %d done",
		m.stats.Total, m.stats.Todo, m.stats.InProgress, m.stats.Done,
	))

	lanes := make([]string, 0, len(m.columns))
	for ci, column := range m.columns {
		var lines []string
		lines = append(lines, styles.ok.Render(fmt.Sprintf("%s (%d)", columnTitles[column.Status], len(column.Tasks))))
		for ri, task := range column.Tasks {
			line := fmt.Sprintf("%s · %s", task.Title, task.Category)
			if ci == m.col && ri == m.row {
				lines = append(lines, styles.picked.Render("> "+line))
			} else {
				lines = append(lines, styles.card.Render(line))
			}
		}
		if len(column.Tasks) == 0 {
			lines = append(lines, styles.help.Render("empty"))
		}
		lanes = append(lanes, styles.column.Render(strings.Join(lines, "\n")))
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, lanes...)

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.moveLeft, m.keys.moveRight, m.keys.add, m.keys.remove,
		m.keys.weeks, m.keys.activity, m.keys.refresh, m.keys.quit,
	})

	footer := m.renderFlash()
	if footer == "" && m.lastUpdated != "" {
		footer = styles.help.Render("updated " + m.lastUpdated)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, boardView, footer, helpView)
}

func (m *Model) renderWeeks() string {
	title := styles.title.Render("Weekly History")

	var b strings.Builder
	for i, week := range m.weeks {
		marker := "  "
		if i == m.cur {
			marker = "> "
		}

		heading := fmt.Sprintf("%s%s · %d/%d done", marker, week.Range, week.Done, len(week.Tasks))
		if week.Current {
			heading += " · this week"
		}
		if i == m.cur {
			b.WriteString(styles.picked.Render(heading))
		} else {
			b.WriteString(styles.card.Render(heading))
		}
		b.WriteString("\n")

		if m.expanded[i] {
			for _, task := range week.Tasks {
				b.WriteString(fmt.Sprintf("      [%s] %s\n", statusGlyph(task), task.Title))
			}
		}
	}
	if len(m.weeks) == 0 {
		b.WriteString(styles.help.Render("no tasks yet"))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.board, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, b.String(), m.renderFlash(), helpView)
}

func statusGlyph(task models.Task) string {
	switch task.Status {
	case models.StatusDone:
		return "x"
	case models.StatusInProgress:
		return "~"
	default:
		return " "
	}
}

func (m *Model) renderActivity() string {
	title := styles.title.Render("Recent Activity")

	var b strings.Builder
	for _, task := range m.feed {
		b.WriteString(fmt.Sprintf("%s  %s (%s)\n", task.CompletedAt.UTC().Format("Jan 2 15:04"), task.Title, task.Category))
	}
	if len(m.feed) == 0 {
		b.WriteString(styles.help.Render("nothing completed yet"))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.board, m.keys.weeks, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, b.String(), m.renderFlash(), helpView)
}

func (m *Model) renderForm() string {
	title := styles.title.Render("New Task")

	categories := models.Categories()
	categoryLine := "Category: "
	for i, category := range categories {
		label := string(category)
		if i == m.category {
			label = styles.ok.Render("[" + label + "]")
		}
		categoryLine += label + " "
	}
	if m.field == fieldCategory {
		categoryLine = styles.picked.Render(categoryLine)
	}

	tabKey := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	saveKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	helpView := m.help.ShortHelpView([]key.Binding{tabKey, saveKey, m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s\n%s",
		title, m.titleInput.View(), m.descInput.View(), categoryLine, m.renderFlash(), helpView)
}
