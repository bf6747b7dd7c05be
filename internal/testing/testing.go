// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/desertthunder/taskboard/internal/store"
)

// MockStore is a configurable test double for [store.Store]
type MockStore struct {
	Tasks []models.Task
	Err   error
}

func (m *MockStore) List(ctx context.Context) ([]models.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tasks, nil
}

func (m *MockStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if m.Err != nil {
		return models.Task{}, m.Err
	}
	m.Tasks = append(m.Tasks, task)
	return task, nil
}

func (m *MockStore) Update(ctx context.Context, id string, patch store.Patch) (models.Task, error) {
	if m.Err != nil {
		return models.Task{}, m.Err
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			patch.Apply(&m.Tasks[i], time.Now().UTC())
			return m.Tasks[i], nil
		}
	}
	return models.Task{}, shared.ErrTaskNotFound
}

func (m *MockStore) Delete(ctx context.Context, id string) (models.Task, error) {
	if m.Err != nil {
		return models.Task{}, m.Err
	}
	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return task, nil
		}
	}
	return models.Task{}, shared.ErrTaskNotFound
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
