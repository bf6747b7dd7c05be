package ui

import (
	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/services"
)

// tasksFetchedMsg carries a full refresh of the task list.
type tasksFetchedMsg struct {
	list *services.TaskList
	err  error
}

// keyCheckedMsg reports whether the entered API key was accepted.
type keyCheckedMsg struct {
	apiKey string
	err    error
}

// taskSavedMsg reports a completed create or update.
type taskSavedMsg struct {
	task *models.Task
	err  error
}

// taskRemovedMsg reports a completed delete.
type taskRemovedMsg struct {
	task *models.Task
	err  error
}
