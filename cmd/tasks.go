package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/taskboard/internal/formatter"
	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/services"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/urfave/cli/v3"
)

// TasksList prints tasks, newest first.
func (r *Runner) TasksList(ctx context.Context, cmd *cli.Command) error {
	list, err := r.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := list.Tasks
	if status := cmd.String("status"); status != "" {
		want := models.Status(status)
		if want != models.NormalizeStatus(status) {
			return cli.Exit(fmt.Sprintf("unknown status %q", status), exitUsage)
		}

		filtered := tasks[:0]
		for _, task := range tasks {
			if task.Status == want {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	if cmd.Bool("json") {
		return r.writeJSON(tasks, cmd.Bool("pretty"))
	}

	r.writePlain("Tasks: %d (updated %s)\n\n", len(tasks), list.LastUpdated)
	for _, task := range tasks {
		marker := " "
		switch task.Status {
		case models.StatusDone:
			marker = "x"
		case models.StatusInProgress:
			marker = "~"
		}
		r.writePlain("[%s] %s  %s (%s, %s)\n", marker, task.ID, task.Title, task.Category, task.Agent)
	}
	return nil
}

// TasksAdd creates a task from positional and flag arguments.
func (r *Runner) TasksAdd(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return cli.Exit("usage: taskboard tasks add <title>", exitUsage)
	}

	task, err := r.client.Create(ctx, services.TaskCreate{
		Title:       title,
		Description: cmd.String("description"),
		Category:    cmd.String("category"),
		Status:      cmd.String("status"),
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	r.logger.Info("task created", "id", task.ID)
	return r.writeJSON(task, true)
}

// TasksDone marks a task done.
func (r *Runner) TasksDone(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return cli.Exit("usage: taskboard tasks done <id>", exitUsage)
	}

	task, err := r.client.SetStatus(ctx, id, models.StatusDone)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	r.writePlain("✓ %s done at %s\n", task.Title, shared.Timestamp(*task.CompletedAt))
	return nil
}

// TasksRemove deletes a task.
func (r *Runner) TasksRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return cli.Exit("usage: taskboard tasks rm <id>", exitUsage)
	}

	task, err := r.client.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	r.writePlain("Deleted %s (%s)\n", task.Title, task.ID)
	return nil
}

// TasksExport renders the task list in the requested format.
func (r *Runner) TasksExport(ctx context.Context, cmd *cli.Command) error {
	list, err := r.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	format := cmd.String("format")

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteExport(list.Tasks, format, output); err != nil {
			if errors.Is(err, shared.ErrInvalidFlag) {
				return cli.Exit(err.Error(), exitUsage)
			}
			return err
		}
		r.writePlain("%s\n", output)
		return nil
	}

	data, err := formatter.Export(list.Tasks, format)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	return r.writePlain("%s", data)
}
