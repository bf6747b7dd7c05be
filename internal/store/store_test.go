package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// newSQLiteForTest opens a migrated in-memory sqlite database.
func newSQLiteForTest(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewSQLiteStore(db)
}

// newMemoryForTest builds an empty ephemeral store with no mirror file.
func newMemoryForTest(t *testing.T) *MemoryStore {
	t.Helper()

	s, err := NewMemoryStore("")
	if err != nil {
		t.Fatalf("failed to create memory store: %v", err)
	}
	s.tasks = nil // contract tests start from an empty store
	return s
}

// TestStoreContract runs the Store behavior shared by every backend.
func TestStoreContract(t *testing.T) {
	backends := []struct {
		name string
		make func(t *testing.T) Store
	}{
		{"memory", func(t *testing.T) Store { return newMemoryForTest(t) }},
		{"sqlite", func(t *testing.T) Store { return newSQLiteForTest(t) }},
	}

	ctx := context.Background()

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			t.Run("create assigns id and round-trips", func(t *testing.T) {
				s := backend.make(t)
				now := time.Now().UTC().Truncate(time.Second)

				created, err := s.Create(ctx, models.NewTask("Scan repos", "weekly scan", "security", "todo", "bot", now))
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}
				if created.ID == "" {
					t.Error("expected an assigned id")
				}
				if created.Status != models.StatusTodo || created.CompletedAt != nil {
					t.Errorf("unexpected created task: %+v", created)
				}

				tasks, err := s.List(ctx)
				if err != nil {
					t.Fatalf("list failed: %v", err)
				}
				if len(tasks) != 1 {
					t.Fatalf("expected 1 task, got %d", len(tasks))
				}
				got := tasks[0]
				if got.ID != created.ID || got.Title != "Scan repos" || got.Category != models.CategorySecurity || got.Agent != models.AgentBot {
					t.Errorf("round-trip mismatch: %+v", got)
				}
			})

			t.Run("list orders newest first", func(t *testing.T) {
				s := backend.make(t)
				base := time.Now().UTC().Truncate(time.Second)

				for i, title := range []string{"oldest", "middle", "newest"} {
					_, err := s.Create(ctx, models.NewTask(title, "", "", "", "", base.Add(time.Duration(i)*time.Hour)))
					if err != nil {
						t.Fatalf("create failed: %v", err)
					}
				}

				tasks, err := s.List(ctx)
				if err != nil {
					t.Fatalf("list failed: %v", err)
				}
				want := []string{"newest", "middle", "oldest"}
				for i, task := range tasks {
					if task.Title != want[i] {
						t.Errorf("position %d: got %q, want %q", i, task.Title, want[i])
					}
				}
			})

			t.Run("status transitions maintain completedAt", func(t *testing.T) {
				s := backend.make(t)
				now := time.Now().UTC().Truncate(time.Second)

				created, err := s.Create(ctx, models.NewTask("Audit", "", "security", "todo", "bot", now))
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}

				done := models.StatusDone
				updated, err := s.Update(ctx, created.ID, Patch{Status: &done})
				if err != nil {
					t.Fatalf("update failed: %v", err)
				}
				if updated.CompletedAt == nil {
					t.Fatal("expected completedAt after moving to done")
				}
				if updated.CompletedAt.Before(now) {
					t.Errorf("completedAt %v earlier than update time %v", updated.CompletedAt, now)
				}

				first := *updated.CompletedAt
				again, err := s.Update(ctx, created.ID, Patch{Status: &done})
				if err != nil {
					t.Fatalf("redundant update failed: %v", err)
				}
				if again.CompletedAt == nil || !again.CompletedAt.Equal(first) {
					t.Errorf("redundant done update clobbered completedAt: %v != %v", again.CompletedAt, first)
				}

				todo := models.StatusTodo
				back, err := s.Update(ctx, created.ID, Patch{Status: &todo})
				if err != nil {
					t.Fatalf("update failed: %v", err)
				}
				if back.CompletedAt != nil {
					t.Errorf("expected cleared completedAt, got %v", back.CompletedAt)
				}
			})

			t.Run("partial update leaves other fields alone", func(t *testing.T) {
				s := backend.make(t)
				now := time.Now().UTC().Truncate(time.Second)

				created, err := s.Create(ctx, models.NewTask("Audit", "original", "security", "todo", "bot", now))
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}

				title := "Renamed"
				updated, err := s.Update(ctx, created.ID, Patch{Title: &title})
				if err != nil {
					t.Fatalf("update failed: %v", err)
				}
				if updated.Title != "Renamed" {
					t.Errorf("expected renamed title, got %q", updated.Title)
				}
				if updated.Description != "original" || updated.Category != models.CategorySecurity || !updated.CreatedAt.Equal(created.CreatedAt) {
					t.Errorf("partial update changed unrelated fields: %+v", updated)
				}
			})

			t.Run("delete removes and returns the task", func(t *testing.T) {
				s := backend.make(t)
				now := time.Now().UTC().Truncate(time.Second)

				created, err := s.Create(ctx, models.NewTask("Audit", "", "security", "todo", "bot", now))
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}

				removed, err := s.Delete(ctx, created.ID)
				if err != nil {
					t.Fatalf("delete failed: %v", err)
				}
				if removed.ID != created.ID {
					t.Errorf("expected removed task %s, got %s", created.ID, removed.ID)
				}

				tasks, err := s.List(ctx)
				if err != nil {
					t.Fatalf("list failed: %v", err)
				}
				if len(tasks) != 0 {
					t.Errorf("expected empty list after delete, got %d tasks", len(tasks))
				}
			})

			t.Run("unknown ids return not found", func(t *testing.T) {
				s := backend.make(t)

				status := models.StatusDone
				if _, err := s.Update(ctx, "missing", Patch{Status: &status}); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("update: expected ErrTaskNotFound, got %v", err)
				}
				if _, err := s.Delete(ctx, "missing"); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("delete: expected ErrTaskNotFound, got %v", err)
				}
			})
		})
	}
}

func TestMemoryStoreMirror(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file seeds example tasks", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")

		s, err := NewMemoryStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		tasks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != len(SeedTasks()) {
			t.Errorf("expected %d seed tasks, got %d", len(SeedTasks()), len(tasks))
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("mirror file should have been written: %v", err)
		}
	})

	t.Run("corrupt file reseeds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		s, err := NewMemoryStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		tasks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != len(SeedTasks()) {
			t.Errorf("expected reseeded store, got %d tasks", len(tasks))
		}
	})

	t.Run("mutations rewrite the mirror", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")

		s, err := NewMemoryStore(path)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		created, err := s.Create(ctx, models.NewTask("Persisted", "", "", "", "", time.Now().UTC()))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read mirror: %v", err)
		}

		var doc struct {
			Tasks       []models.Task `json:"tasks"`
			LastUpdated string        `json:"lastUpdated"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("mirror is not valid JSON: %v", err)
		}
		if doc.LastUpdated == "" {
			t.Error("expected lastUpdated in mirror document")
		}

		found := false
		for _, task := range doc.Tasks {
			if task.ID == created.ID {
				found = true
			}
		}
		if !found {
			t.Error("created task missing from mirror document")
		}

		// A new store over the same file sees the mutation.
		reopened, err := NewMemoryStore(path)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		tasks, err := reopened.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != len(SeedTasks())+1 {
			t.Errorf("expected %d tasks after reopen, got %d", len(SeedTasks())+1, len(tasks))
		}
	})
}

func TestNewSelectsBackend(t *testing.T) {
	t.Run("ephemeral by default", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		s, closer, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer closer()

		if _, ok := s.(*MemoryStore); !ok {
			t.Errorf("expected *MemoryStore, got %T", s)
		}
	})

	t.Run("sqlite when path configured", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "tasks.db")

		s, closer, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer closer()

		if _, ok := s.(*SQLiteStore); !ok {
			t.Errorf("expected *SQLiteStore, got %T", s)
		}
	})

	t.Run("supabase wins over sqlite", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Storage.SupabaseURL = "https://project.supabase.co"
		cfg.Storage.SupabaseKey = "service-key"
		cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "tasks.db")

		s, closer, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer closer()

		if _, ok := s.(*SupabaseStore); !ok {
			t.Errorf("expected *SupabaseStore, got %T", s)
		}
	})
}
