package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Run("category", func(t *testing.T) {
		tc := []struct {
			raw  string
			want Category
		}{
			{"security", CategorySecurity},
			{"research", CategoryResearch},
			{"", CategoryDevelopment},
			{"bogus", CategoryDevelopment},
			{"Development", CategoryDevelopment},
		}
		for _, tt := range tc {
			if got := NormalizeCategory(tt.raw); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	})

	t.Run("status", func(t *testing.T) {
		tc := []struct {
			raw  string
			want Status
		}{
			{"todo", StatusTodo},
			{"in-progress", StatusInProgress},
			{"done", StatusDone},
			{"", StatusTodo},
			{"archived", StatusTodo},
		}
		for _, tt := range tc {
			if got := NormalizeStatus(tt.raw); got != tt.want {
				t.Errorf("NormalizeStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	})

	t.Run("agent", func(t *testing.T) {
		tc := []struct {
			raw  string
			want Agent
		}{
			{"bot", AgentBot},
			{"cron", AgentBot},
			{"manual", AgentManual},
			{"", AgentManual},
			{"robot", AgentManual},
		}
		for _, tt := range tc {
			if got := NormalizeAgent(tt.raw); got != tt.want {
				t.Errorf("NormalizeAgent(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	})
}

func TestNewTask(t *testing.T) {
	now := time.Date(2026, 2, 7, 9, 30, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		task := NewTask("  Scan repos  ", "", "", "", "", now)

		if task.Title != "Scan repos" {
			t.Errorf("expected trimmed title, got %q", task.Title)
		}
		if task.Category != CategoryDevelopment {
			t.Errorf("expected default category, got %v", task.Category)
		}
		if task.Status != StatusTodo {
			t.Errorf("expected default status, got %v", task.Status)
		}
		if task.Agent != AgentManual {
			t.Errorf("expected default agent, got %v", task.Agent)
		}
		if task.CompletedAt != nil {
			t.Error("expected nil completedAt for a todo task")
		}
		if !task.CreatedAt.Equal(now) {
			t.Errorf("expected createdAt %v, got %v", now, task.CreatedAt)
		}
	})

	t.Run("created as done stamps completedAt", func(t *testing.T) {
		task := NewTask("Ship it", "", "development", "done", "bot", now)

		if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
			t.Errorf("expected completedAt %v, got %v", now, task.CompletedAt)
		}
		if task.Agent != AgentBot {
			t.Errorf("expected bot agent, got %v", task.Agent)
		}
	})
}

func TestSetStatus(t *testing.T) {
	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	later := created.Add(30 * time.Minute)
	muchLater := created.Add(2 * time.Hour)

	t.Run("todo to done stamps completion", func(t *testing.T) {
		task := NewTask("Audit", "", "security", "todo", "bot", created)
		task.SetStatus(StatusDone, later)

		if task.CompletedAt == nil || !task.CompletedAt.Equal(later) {
			t.Errorf("expected completedAt %v, got %v", later, task.CompletedAt)
		}
	})

	t.Run("redundant done keeps original timestamp", func(t *testing.T) {
		task := NewTask("Audit", "", "security", "done", "bot", created)
		task.SetStatus(StatusDone, muchLater)

		if task.CompletedAt == nil || !task.CompletedAt.Equal(created) {
			t.Errorf("expected original completedAt %v, got %v", created, task.CompletedAt)
		}
	})

	t.Run("leaving done clears completion", func(t *testing.T) {
		task := NewTask("Audit", "", "security", "done", "bot", created)
		task.SetStatus(StatusInProgress, later)

		if task.CompletedAt != nil {
			t.Errorf("expected nil completedAt, got %v", task.CompletedAt)
		}
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 2, 7, 9, 30, 0, 0, time.UTC)

	tc := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid task", func(task *Task) {}, false},
		{"empty title", func(task *Task) { task.Title = "  " }, true},
		{"invalid category", func(task *Task) { task.Category = "chores" }, true},
		{"invalid status", func(task *Task) { task.Status = "paused" }, true},
		{"zero createdAt", func(task *Task) { task.CreatedAt = time.Time{} }, true},
		{"done without completedAt", func(task *Task) {
			task.Status = StatusDone
			task.CompletedAt = nil
		}, true},
		{"completedAt without done", func(task *Task) {
			task.Status = StatusTodo
			task.CompletedAt = &now
		}, true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("Build Dashboard", "deploy it", "development", "todo", "manual", now)
			tt.mutate(&task)

			err := task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskJSON(t *testing.T) {
	now := time.Date(2026, 2, 7, 9, 30, 0, 0, time.UTC)
	task := NewTask("Scan repos", "weekly", "security", "todo", "bot", now)
	task.ID = "abc123"

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(data)
	for _, field := range []string{`"id":"abc123"`, `"createdAt"`, `"completedAt":null`, `"category":"security"`, `"agent":"bot"`} {
		if !strings.Contains(body, field) {
			t.Errorf("marshaled task missing %s: %s", field, body)
		}
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Title != task.Title || back.Status != task.Status || back.CompletedAt != nil {
		t.Errorf("round-trip mismatch: %+v", back)
	}
}
