// Hosted [Store] implementation backed by a Supabase tasks table.
//
// Talks directly to the PostgREST endpoint (/rest/v1/tasks) with the
// project's service key. Rows are snake_case; the API shape is camelCase,
// so every row crosses through taskRow on the way in and out.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// SupabaseStore implements [Store] against a hosted Supabase table.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewSupabaseStore creates a hosted store for the given project URL and
// service key. A nil client falls back to [http.DefaultClient].
func NewSupabaseStore(baseURL, serviceKey string, client *http.Client) *SupabaseStore {
	if client == nil {
		client = http.DefaultClient
	}

	return &SupabaseStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: client,
	}
}

// taskRow is the snake_case shape of a row in the hosted tasks table.
type taskRow struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Agent       string  `json:"agent"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func toRow(task models.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    string(task.Category),
		Status:      string(task.Status),
		Agent:       string(task.Agent),
		CreatedAt:   shared.Timestamp(task.CreatedAt),
	}

	if task.CompletedAt != nil {
		completed := shared.Timestamp(*task.CompletedAt)
		row.CompletedAt = &completed
	}

	return row
}

func (r taskRow) toTask() (models.Task, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("bad created_at %q: %w", r.CreatedAt, err)
	}

	task := models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    models.Category(r.Category),
		Status:      models.Status(r.Status),
		Agent:       models.Agent(r.Agent),
		CreatedAt:   createdAt,
	}

	if r.CompletedAt != nil {
		completedAt, err := time.Parse(time.RFC3339, *r.CompletedAt)
		if err != nil {
			return models.Task{}, fmt.Errorf("bad completed_at %q: %w", *r.CompletedAt, err)
		}
		task.CompletedAt = &completedAt
	}

	return task, nil
}

// doRequest performs one PostgREST call and decodes the JSON response into
// result when non-nil. Every mutating call sends Prefer: return=representation
// so the affected rows come back in the body.
func (s *SupabaseStore) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: supabase status %d: %s", shared.ErrStorage, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: supabase status %d", shared.ErrStorage, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// List retrieves all tasks ordered newest-createdAt-first.
func (s *SupabaseStore) List(ctx context.Context) ([]models.Task, error) {
	var rows []taskRow
	if err := s.doRequest(ctx, http.MethodGet, "/rest/v1/tasks?select=*&order=created_at.desc", nil, &rows); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Create inserts a task. The table assigns the id; the created row comes
// back in the representation.
func (s *SupabaseStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	row := toRow(task)
	row.ID = "" // let the table default assign it

	var created []taskRow
	if err := s.doRequest(ctx, http.MethodPost, "/rest/v1/tasks", row, &created); err != nil {
		return models.Task{}, err
	}
	if len(created) == 0 {
		return models.Task{}, fmt.Errorf("%w: create returned no rows", shared.ErrStorage)
	}

	return created[0].toTask()
}

// Update reads the current row, applies the patch locally so completedAt
// stamping matches the other backends, and writes the mutable columns back.
func (s *SupabaseStore) Update(ctx context.Context, id string, patch Patch) (models.Task, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	patch.Apply(&task, time.Now().UTC())

	row := toRow(task)
	update := map[string]any{
		"title":        row.Title,
		"description":  row.Description,
		"category":     row.Category,
		"status":       row.Status,
		"completed_at": row.CompletedAt,
	}

	var updated []taskRow
	if err := s.doRequest(ctx, http.MethodPatch, s.rowEndpoint(id), update, &updated); err != nil {
		return models.Task{}, err
	}
	if len(updated) == 0 {
		return models.Task{}, shared.ErrTaskNotFound
	}

	return updated[0].toTask()
}

// Delete removes the task with the given id and returns it.
func (s *SupabaseStore) Delete(ctx context.Context, id string) (models.Task, error) {
	var removed []taskRow
	if err := s.doRequest(ctx, http.MethodDelete, s.rowEndpoint(id), nil, &removed); err != nil {
		return models.Task{}, err
	}
	if len(removed) == 0 {
		return models.Task{}, shared.ErrTaskNotFound
	}

	return removed[0].toTask()
}

// get retrieves a single row by id.
func (s *SupabaseStore) get(ctx context.Context, id string) (models.Task, error) {
	var rows []taskRow
	if err := s.doRequest(ctx, http.MethodGet, s.rowEndpoint(id)+"&select=*", nil, &rows); err != nil {
		return models.Task{}, err
	}
	if len(rows) == 0 {
		return models.Task{}, shared.ErrTaskNotFound
	}

	return rows[0].toTask()
}

func (s *SupabaseStore) rowEndpoint(id string) string {
	return "/rest/v1/tasks?id=eq." + url.QueryEscape(id)
}
