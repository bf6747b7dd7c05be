package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// fakePostgrest emulates just enough of the PostgREST tasks endpoint for
// the SupabaseStore tests: id=eq. filters, representation bodies, and
// service-key header checks.
type fakePostgrest struct {
	rows []taskRow
	key  string
}

func (f *fakePostgrest) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()

		if r.Header.Get("apikey") != f.key {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid api key"})
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/rest/v1/tasks") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		filter := r.URL.Query().Get("id")
		matchID := strings.TrimPrefix(filter, "eq.")

		switch r.Method {
		case http.MethodGet:
			if filter == "" {
				json.NewEncoder(w).Encode(f.rows)
				return
			}
			json.NewEncoder(w).Encode(f.matching(matchID))

		case http.MethodPost:
			var row taskRow
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			row.ID = "srv-1"
			f.rows = append(f.rows, row)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]taskRow{row})

		case http.MethodPatch:
			var update map[string]any
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var updated []taskRow
			for i := range f.rows {
				if f.rows[i].ID != matchID {
					continue
				}
				if v, ok := update["title"].(string); ok {
					f.rows[i].Title = v
				}
				if v, ok := update["status"].(string); ok {
					f.rows[i].Status = v
				}
				if v, ok := update["completed_at"].(string); ok {
					f.rows[i].CompletedAt = &v
				} else if update["completed_at"] == nil {
					f.rows[i].CompletedAt = nil
				}
				updated = append(updated, f.rows[i])
			}
			if updated == nil {
				updated = []taskRow{}
			}
			json.NewEncoder(w).Encode(updated)

		case http.MethodDelete:
			var removed []taskRow
			var kept []taskRow
			for _, row := range f.rows {
				if row.ID == matchID {
					removed = append(removed, row)
					continue
				}
				kept = append(kept, row)
			}
			f.rows = kept
			if removed == nil {
				removed = []taskRow{}
			}
			json.NewEncoder(w).Encode(removed)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (f *fakePostgrest) matching(id string) []taskRow {
	rows := []taskRow{}
	for _, row := range f.rows {
		if row.ID == id {
			rows = append(rows, row)
		}
	}
	return rows
}

func TestSupabaseStore(t *testing.T) {
	ctx := context.Background()
	created := "2026-02-03T10:00:00Z"
	completed := "2026-02-03T10:30:00Z"

	newFake := func() *fakePostgrest {
		return &fakePostgrest{
			key: "service-key",
			rows: []taskRow{
				{
					ID: "a1", Title: "Security Audit", Category: "security",
					Status: "done", Agent: "bot",
					CreatedAt: created, CompletedAt: &completed,
				},
			},
		}
	}

	t.Run("List maps rows to tasks", func(t *testing.T) {
		fake := newFake()
		srv := httptest.NewServer(fake.handler(t))
		defer srv.Close()

		s := NewSupabaseStore(srv.URL, "service-key", srv.Client())
		tasks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}

		task := tasks[0]
		if task.ID != "a1" || task.Category != models.CategorySecurity || task.Status != models.StatusDone {
			t.Errorf("unexpected task: %+v", task)
		}
		if task.CompletedAt == nil || shared.Timestamp(*task.CompletedAt) != completed {
			t.Errorf("expected completedAt %s, got %v", completed, task.CompletedAt)
		}
	})

	t.Run("Create returns server-assigned id", func(t *testing.T) {
		fake := newFake()
		srv := httptest.NewServer(fake.handler(t))
		defer srv.Close()

		s := NewSupabaseStore(srv.URL, "service-key", srv.Client())
		task, err := s.Create(ctx, models.NewTask("New Task", "", "", "", "", time.Now().UTC()))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if task.ID != "srv-1" {
			t.Errorf("expected server-assigned id, got %q", task.ID)
		}
	})

	t.Run("Update clears completed_at when leaving done", func(t *testing.T) {
		fake := newFake()
		srv := httptest.NewServer(fake.handler(t))
		defer srv.Close()

		s := NewSupabaseStore(srv.URL, "service-key", srv.Client())
		todo := models.StatusTodo
		task, err := s.Update(ctx, "a1", Patch{Status: &todo})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if task.Status != models.StatusTodo || task.CompletedAt != nil {
			t.Errorf("expected cleared completion, got %+v", task)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		fake := newFake()
		srv := httptest.NewServer(fake.handler(t))
		defer srv.Close()

		s := NewSupabaseStore(srv.URL, "service-key", srv.Client())
		if _, err := s.Delete(ctx, "missing"); !errors.Is(err, shared.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("backend errors surface as storage failures", func(t *testing.T) {
		fake := newFake()
		srv := httptest.NewServer(fake.handler(t))
		defer srv.Close()

		s := NewSupabaseStore(srv.URL, "wrong-key", srv.Client())
		if _, err := s.List(ctx); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
	})
}
