// Task dashboard API client.
//
// Communicates with the taskboard server (internal/server) over its JSON
// API. Used by the TUI and by the tasks subcommands.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

const defaultBaseURL string = "http://127.0.0.1:8080"

// TaskList is the response of the list endpoint: the tasks plus a server
// side freshness stamp.
type TaskList struct {
	Tasks       []models.Task `json:"tasks"`
	LastUpdated string        `json:"lastUpdated"`
}

// TaskUpdate is a partial update sent as a PATCH body. Nil fields are
// omitted and left unchanged by the server.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// TaskCreate is the body of the create endpoint. Only Title is required;
// the server fills in defaults for the rest.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Agent       string `json:"agent,omitempty"`
}

// TasksClient talks to the task dashboard API with a static bearer token.
type TasksClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTasksClient creates a client for the given server. An empty baseURL
// falls back to the local development address.
func NewTasksClient(baseURL, apiKey string) *TasksClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &TasksClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// SetKey replaces the bearer token used on subsequent requests.
func (c *TasksClient) SetKey(apiKey string) {
	c.apiKey = apiKey
}

func (c *TasksClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return shared.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%w: %s (status %d)", shared.ErrAPIRequest, errResp.Error, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// List fetches every task, newest first, plus the server's freshness stamp.
func (c *TasksClient) List(ctx context.Context) (*TaskList, error) {
	var list TaskList
	if err := c.doRequest(ctx, http.MethodGet, "/api/tasks", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create adds a task and returns the stored record.
func (c *TasksClient) Create(ctx context.Context, task TaskCreate) (*models.Task, error) {
	var created models.Task
	if err := c.doRequest(ctx, http.MethodPost, "/api/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update and returns the updated record.
func (c *TasksClient) Update(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	var updated models.Task
	if err := c.doRequest(ctx, http.MethodPatch, c.taskEndpoint(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetStatus is a convenience wrapper for the most common update.
func (c *TasksClient) SetStatus(ctx context.Context, id string, status models.Status) (*models.Task, error) {
	value := string(status)
	return c.Update(ctx, id, TaskUpdate{Status: &value})
}

// Delete removes a task and returns the removed record.
func (c *TasksClient) Delete(ctx context.Context, id string) (*models.Task, error) {
	var removed models.Task
	if err := c.doRequest(ctx, http.MethodDelete, c.taskEndpoint(id), nil, &removed); err != nil {
		return nil, err
	}
	return &removed, nil
}

// Probe checks whether the configured key is accepted by the server.
func (c *TasksClient) Probe(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/api/tasks", nil, nil)
}

func (c *TasksClient) taskEndpoint(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

// BaseURL exposes the server address so callers can build sibling clients.
func (c *TasksClient) BaseURL() string {
	return c.baseURL
}
