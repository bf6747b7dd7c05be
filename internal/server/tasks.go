package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/desertthunder/taskboard/internal/store"
)

// TaskHandler serves the task CRUD API:
//
//	GET    /api/tasks       list all tasks
//	POST   /api/tasks       create a task
//	PATCH  /api/tasks/{id}  partial update
//	DELETE /api/tasks/{id}  remove a task
//
// The handler owns method dispatch for both patterns so unsupported verbs
// get a 405 with the uniform error body instead of the mux default.
type TaskHandler struct {
	store  store.Store
	logger *log.Logger
	now    func() time.Time
}

// NewTaskHandler creates a TaskHandler backed by the given store.
func NewTaskHandler(s store.Store, logger *log.Logger) *TaskHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TaskHandler{store: s, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Routes returns the path patterns this handler serves.
func (h *TaskHandler) Routes() []string {
	return []string{"/api/tasks", "/api/tasks/"}
}

// listResponse is the GET /api/tasks body.
type listResponse struct {
	Tasks       []models.Task `json:"tasks"`
	LastUpdated string        `json:"lastUpdated"`
}

// createRequest is the POST /api/tasks body. Enum fields are normalized,
// never rejected.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Agent       string `json:"agent"`
}

// updateRequest is the PATCH body. Pointer fields distinguish "absent"
// from "set to empty". Invalid enum values are ignored, matching the
// create-side leniency: an unknown category leaves the stored one alone.
type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

// ServeHTTP dispatches on method and path.
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks"), "/")

	if id == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.remove(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Tasks:       tasks,
		LastUpdated: shared.Timestamp(h.now()),
	})
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task := models.NewTask(body.Title, body.Description, body.Category, body.Status, body.Agent, h.now())

	created, err := h.store.Create(r.Context(), task)
	if err != nil {
		h.fail(w, "create", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var body updateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := store.Patch{}
	if body.Title != nil {
		title := strings.TrimSpace(*body.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if body.Description != nil {
		description := strings.TrimSpace(*body.Description)
		patch.Description = &description
	}
	if body.Category != nil {
		if category := models.Category(*body.Category); category == models.NormalizeCategory(*body.Category) {
			patch.Category = &category
		}
	}
	if body.Status != nil {
		if status := models.Status(*body.Status); status == models.NormalizeStatus(*body.Status) {
			patch.Status = &status
		}
	}

	task, err := h.store.Update(r.Context(), id, patch)
	if errors.Is(err, shared.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		h.fail(w, "update", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) remove(w http.ResponseWriter, r *http.Request, id string) {
	task, err := h.store.Delete(r.Context(), id)
	if errors.Is(err, shared.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		h.fail(w, "delete", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// fail logs the real error and answers with a generic 500. Storage details
// never leak to callers.
func (h *TaskHandler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("storage failure", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
