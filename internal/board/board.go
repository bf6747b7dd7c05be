// package board derives dashboard views from a flat task list.
//
// Pure functions over []models.Task: column counts for the kanban board,
// ISO week grouping for the weekly view, and a completion feed. The TUI
// and the CLI subcommands both render from these.
package board

import (
	"fmt"
	"sort"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
)

// activityLimit caps the completion feed.
const activityLimit = 8

// Stats holds per column counts for the kanban header.
type Stats struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}

// Column is one kanban lane.
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Week is one row of the weekly view. Year and Week follow ISO 8601, so
// tasks completed in the first days of January may land in the previous
// year's final week.
type Week struct {
	Year    int
	Week    int
	Range   string
	Current bool
	Tasks   []models.Task
	Done    int
}

// Summarize counts tasks per status.
func Summarize(tasks []models.Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusTodo:
			stats.Todo++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusDone:
			stats.Done++
		}
	}
	return stats
}

// Columns splits tasks into the three kanban lanes, preserving input order
// within each lane.
func Columns(tasks []models.Task) []Column {
	columns := []Column{
		{Status: models.StatusTodo},
		{Status: models.StatusInProgress},
		{Status: models.StatusDone},
	}

	for _, task := range tasks {
		for i := range columns {
			if columns[i].Status == task.Status {
				columns[i].Tasks = append(columns[i].Tasks, task)
				break
			}
		}
	}

	return columns
}

// weekOf returns the ISO year and week a task belongs to. Done tasks group
// by completion time, everything else by creation time.
func weekOf(task models.Task) (int, int) {
	at := task.CreatedAt
	if task.CompletedAt != nil {
		at = *task.CompletedAt
	}
	return at.UTC().ISOWeek()
}

// weekRange formats the Monday through Sunday span of an ISO week.
func weekRange(year, week int) string {
	// Jan 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -(int(jan4.Weekday())+6)%7)
	monday = monday.AddDate(0, 0, (week-1)*7)
	sunday := monday.AddDate(0, 0, 6)

	if monday.Month() == sunday.Month() {
		return fmt.Sprintf("%s %d - %d", monday.Month().String()[:3], monday.Day(), sunday.Day())
	}
	return fmt.Sprintf("%s %d - %s %d", monday.Month().String()[:3], monday.Day(), sunday.Month().String()[:3], sunday.Day())
}

// GroupByWeek buckets tasks into ISO weeks, newest week first. Tasks within
// a week keep their input order.
func GroupByWeek(tasks []models.Task, now time.Time) []Week {
	currentYear, currentWeek := now.UTC().ISOWeek()

	index := map[[2]int]int{}
	var weeks []Week

	for _, task := range tasks {
		year, week := weekOf(task)
		key := [2]int{year, week}

		i, ok := index[key]
		if !ok {
			i = len(weeks)
			index[key] = i
			weeks = append(weeks, Week{
				Year:    year,
				Week:    week,
				Range:   weekRange(year, week),
				Current: year == currentYear && week == currentWeek,
			})
		}

		weeks[i].Tasks = append(weeks[i].Tasks, task)
		if task.Status == models.StatusDone {
			weeks[i].Done++
		}
	}

	sort.SliceStable(weeks, func(a, b int) bool {
		if weeks[a].Year != weeks[b].Year {
			return weeks[a].Year > weeks[b].Year
		}
		return weeks[a].Week > weeks[b].Week
	})

	return weeks
}

// RecentActivity returns the latest completed tasks, most recent first,
// capped at a small fixed count for the feed.
func RecentActivity(tasks []models.Task) []models.Task {
	var done []models.Task
	for _, task := range tasks {
		if task.Status == models.StatusDone && task.CompletedAt != nil {
			done = append(done, task)
		}
	}

	sort.SliceStable(done, func(a, b int) bool {
		return done[a].CompletedAt.After(*done[b].CompletedAt)
	})

	if len(done) > activityLimit {
		done = done[:activityLimit]
	}
	return done
}
