// package formatter renders task lists for export (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// completedString renders the completion time, or a dash for open tasks.
func completedString(task models.Task) string {
	if task.CompletedAt == nil {
		return "-"
	}
	return shared.Timestamp(*task.CompletedAt)
}

// ExportToCSV converts tasks to CSV with columns: ID, Title, Category, Status, Agent, Created, Completed
func ExportToCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Category", "Status", "Agent", "Created", "Completed"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, task := range tasks {
		record := []string{
			task.ID,
			task.Title,
			string(task.Category),
			string(task.Status),
			string(task.Agent),
			shared.Timestamp(task.CreatedAt),
			completedString(task),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// statusHeadings fixes the section order of the Markdown export.
var statusHeadings = []struct {
	status models.Status
	title  string
}{
	{models.StatusTodo, "To Do"},
	{models.StatusInProgress, "In Progress"},
	{models.StatusDone, "Done"},
}

// ExportToMarkdown converts tasks to a Markdown board grouped by status.
func ExportToMarkdown(tasks []models.Task, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Tasks"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Total**: %d\n", len(tasks)))

	for _, heading := range statusHeadings {
		var section []models.Task
		for _, task := range tasks {
			if task.Status == heading.status {
				section = append(section, task)
			}
		}

		buf.WriteString(fmt.Sprintf("\n## %s (%d)\n\n", heading.title, len(section)))
		for _, task := range section {
			buf.WriteString(fmt.Sprintf("- **%s** [%s, %s]", task.Title, task.Category, task.Agent))
			if task.Description != "" {
				buf.WriteString(fmt.Sprintf(" - %s", task.Description))
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts tasks to a plain text listing.
func ExportToText(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Tasks: %d\n\n", len(tasks)))
	for i, task := range tasks {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n", i+1, task.Status, task.Title, task.Category))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders tasks as an indented JSON array.
func ExportToJSON(tasks []models.Task) ([]byte, error) {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders tasks in the named format: csv, markdown, text or json.
func Export(tasks []models.Task, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(tasks)
	case "markdown", "md":
		return ExportToMarkdown(tasks, "")
	case "text", "txt", "":
		return ExportToText(tasks)
	case "json":
		return ExportToJSON(tasks)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders tasks and writes the result to a file.
func WriteExport(tasks []models.Task, format, filepath string) error {
	data, err := Export(tasks, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
