// package models defines the data model for the task dashboard
package models

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a task by the kind of work it tracks.
type Category string

const (
	CategoryDevelopment Category = "development"
	CategoryAutomation  Category = "automation"
	CategorySecurity    Category = "security"
	CategoryResearch    Category = "research"
	CategoryContent     Category = "content"
	CategoryMaintenance Category = "maintenance"
)

// Status is a task's position on the board.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Agent records whether a task was created by an automated agent or a person.
type Agent string

const (
	AgentBot    Agent = "bot"
	AgentManual Agent = "manual"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryDevelopment,
		CategoryAutomation,
		CategorySecurity,
		CategoryResearch,
		CategoryContent,
		CategoryMaintenance,
	}
}

// Statuses lists all valid statuses in board-column order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// NormalizeCategory maps raw input to a valid [Category].
// Invalid or absent values default to [CategoryDevelopment].
func NormalizeCategory(raw string) Category {
	c := Category(raw)
	for _, valid := range Categories() {
		if c == valid {
			return c
		}
	}
	return CategoryDevelopment
}

// NormalizeStatus maps raw input to a valid [Status].
// Invalid or absent values default to [StatusTodo].
func NormalizeStatus(raw string) Status {
	s := Status(raw)
	for _, valid := range Statuses() {
		if s == valid {
			return s
		}
	}
	return StatusTodo
}

// NormalizeAgent maps raw input to a valid [Agent].
//
// "cron" is a legacy alias for bot agents still emitted by old automations;
// it is accepted on input but stored as [AgentBot]. Everything else that
// isn't "bot" is [AgentManual].
func NormalizeAgent(raw string) Agent {
	switch raw {
	case string(AgentBot), "cron":
		return AgentBot
	default:
		return AgentManual
	}
}

// Task is the unit of work tracked by the dashboard.
//
// CreatedAt is assigned once at creation and never changes. CompletedAt is
// non-nil exactly when Status is [StatusDone].
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Agent       Agent      `json:"agent"`
}

// NewTask builds a task from raw input fields, normalizing every enum and
// stamping CreatedAt (and CompletedAt for tasks created directly as done).
// The ID is left empty for the store to assign.
func NewTask(title, description, category, status, agent string, now time.Time) Task {
	task := Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    NormalizeCategory(category),
		Status:      NormalizeStatus(status),
		CreatedAt:   now,
		Agent:       NormalizeAgent(agent),
	}

	if task.Status == StatusDone {
		task.CompletedAt = &now
	}

	return task
}

// Validate checks the task's invariants.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.Category != NormalizeCategory(string(t.Category)) {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	if t.Status != NormalizeStatus(string(t.Status)) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("createdAt is required")
	}
	if (t.Status == StatusDone) != (t.CompletedAt != nil) {
		return fmt.Errorf("completedAt must be set exactly when status is done")
	}
	return nil
}

// SetStatus transitions the task to status and maintains the CompletedAt
// invariant: entering done stamps the completion time once (redundant done
// updates keep the original timestamp), leaving done clears it.
func (t *Task) SetStatus(status Status, now time.Time) {
	t.Status = status
	if status == StatusDone {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		return
	}
	t.CompletedAt = nil
}

// AgentLabel returns the badge text for the task's agent.
func (t Task) AgentLabel() string {
	if t.Agent == AgentBot {
		return "Bot"
	}
	return "Manual"
}
