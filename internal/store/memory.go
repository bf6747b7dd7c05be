package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// MemoryStore is the ephemeral backend: an ordered in-process task list
// guarded by a mutex, optionally mirrored to a JSON document on disk.
//
// The mirror file holds {"tasks": [...], "lastUpdated": "..."} and is
// rewritten wholesale on every mutation. A missing or corrupt file reseeds
// the store with the example task set. There is no multi-instance
// consistency: the file exists only so restarts on the same host keep
// their tasks.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []models.Task
	path  string
}

// mirrorDoc is the on-disk shape of the ephemeral store.
type mirrorDoc struct {
	Tasks       []models.Task `json:"tasks"`
	LastUpdated string        `json:"lastUpdated"`
}

// SeedTasks returns the example task set used to populate a fresh
// ephemeral store.
func SeedTasks() []models.Task {
	at := func(value string) time.Time {
		t, _ := time.Parse(time.RFC3339, value)
		return t
	}
	done := func(value string) *time.Time {
		t := at(value)
		return &t
	}

	return []models.Task{
		{
			ID:          "1",
			Title:       "Security Audit",
			Description: "Daily automated security check of all repositories",
			Category:    models.CategorySecurity,
			Status:      models.StatusDone,
			CreatedAt:   at("2026-02-03T10:00:00Z"),
			CompletedAt: done("2026-02-03T10:30:00Z"),
			Agent:       models.AgentBot,
		},
		{
			ID:          "2",
			Title:       "Build Dashboard",
			Description: "Create and deploy the task dashboard",
			Category:    models.CategoryDevelopment,
			Status:      models.StatusDone,
			CreatedAt:   at("2026-02-04T09:00:00Z"),
			CompletedAt: done("2026-02-06T18:47:00Z"),
			Agent:       models.AgentManual,
		},
		{
			ID:          "3",
			Title:       "Setup CI/CD Pipeline",
			Description: "Configure automated testing and deployment workflows",
			Category:    models.CategoryAutomation,
			Status:      models.StatusInProgress,
			CreatedAt:   at("2026-02-06T14:00:00Z"),
			Agent:       models.AgentBot,
		},
		{
			ID:          "4",
			Title:       "API Rate Limit Monitor",
			Description: "Implement monitoring for external API usage and costs",
			Category:    models.CategoryMaintenance,
			Status:      models.StatusTodo,
			CreatedAt:   at("2026-02-07T08:00:00Z"),
			Agent:       models.AgentBot,
		},
		{
			ID:          "5",
			Title:       "Research LLM Caching",
			Description: "Evaluate caching strategies to reduce API costs",
			Category:    models.CategoryResearch,
			Status:      models.StatusTodo,
			CreatedAt:   at("2026-02-07T09:30:00Z"),
			Agent:       models.AgentManual,
		},
	}
}

// NewMemoryStore creates an ephemeral store. An empty path keeps the list
// purely in-process; otherwise the list is loaded from (or seeded into)
// the mirror file at path.
func NewMemoryStore(path string) (*MemoryStore, error) {
	s := &MemoryStore{path: path}

	if path == "" {
		s.tasks = SeedTasks()
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err == nil {
		var doc mirrorDoc
		if err := json.Unmarshal(data, &doc); err == nil {
			s.tasks = doc.Tasks
			return s, nil
		}
	}

	// Missing or corrupt mirror: reseed and write it back.
	s.tasks = SeedTasks()
	if err := s.flushLocked(); err != nil {
		return nil, fmt.Errorf("failed to seed mirror file: %w", err)
	}
	return s, nil
}

// List returns a copy of all tasks ordered newest-createdAt-first.
func (s *MemoryStore) List(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// Create assigns an id and appends the task to the list.
func (s *MemoryStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = shared.GenerateID()
	if err := task.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("validation failed: %w", err)
	}

	s.tasks = append(s.tasks, task)
	if err := s.flushLocked(); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// Update applies a partial update to the task with the given id.
func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		patch.Apply(&s.tasks[i], time.Now().UTC())
		if err := s.flushLocked(); err != nil {
			return models.Task{}, err
		}
		return s.tasks[i], nil
	}

	return models.Task{}, shared.ErrTaskNotFound
}

// Delete removes the task with the given id and returns it.
func (s *MemoryStore) Delete(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		removed := s.tasks[i]
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		if err := s.flushLocked(); err != nil {
			return models.Task{}, err
		}
		return removed, nil
	}

	return models.Task{}, shared.ErrTaskNotFound
}

// flushLocked rewrites the mirror file. Callers must hold the mutex.
func (s *MemoryStore) flushLocked() error {
	if s.path == "" {
		return nil
	}

	doc := mirrorDoc{
		Tasks:       s.tasks,
		LastUpdated: shared.Timestamp(time.Now()),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mirror document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mirror file: %w", err)
	}

	return nil
}
