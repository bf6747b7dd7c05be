// package store provides the task persistence layer.
//
// Three interchangeable [Store] implementations exist: a hosted Supabase
// table reached over PostgREST, a local sqlite database, and an ephemeral
// in-process list optionally mirrored to a JSON file. The backend is chosen
// once at startup from configuration and injected into the HTTP handlers.
package store

import (
	"context"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// Store defines the contract every task backend implements.
//
// List returns tasks ordered newest-createdAt-first. Update and Delete
// return [shared.ErrTaskNotFound] (possibly wrapped) for unknown ids.
type Store interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, id string, patch Patch) (models.Task, error)
	Delete(ctx context.Context, id string) (models.Task, error)
}

// Patch is a partial task update. Nil fields are left unchanged.
//
// Agent and CreatedAt are not patchable: the agent is fixed at creation
// and createdAt is immutable.
type Patch struct {
	Title       *string
	Description *string
	Category    *models.Category
	Status      *models.Status
}

// Apply mutates task in place. Status transitions go through
// [models.Task.SetStatus] so the completedAt invariant holds on every
// backend: entering done stamps now (only when unset), leaving done clears.
func (p Patch) Apply(task *models.Task, now time.Time) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
	if p.Status != nil {
		task.SetStatus(*p.Status, now)
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Status == nil
}

// New selects and constructs a backend from configuration.
//
// Selection order: Supabase credentials, then a sqlite path, then the
// ephemeral store (mirrored to cfg.Storage.FilePath when set). The returned
// closer releases backend resources and is a no-op for stateless backends.
func New(cfg *shared.Config) (Store, func() error, error) {
	s := cfg.Storage

	if s.SupabaseURL != "" && s.SupabaseKey != "" {
		return NewSupabaseStore(s.SupabaseURL, s.SupabaseKey, nil), func() error { return nil }, nil
	}

	if s.SQLitePath != "" {
		db, err := shared.NewDatabase(s.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if s.MaxOpenConns > 0 {
			shared.ConfigureDatabase(db, s.MaxOpenConns, s.MaxIdleConns)
		}
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewSQLiteStore(db), db.Close, nil
	}

	mem, err := NewMemoryStore(s.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return mem, func() error { return nil }, nil
}
