package board

import (
	"testing"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
)

func taskAt(id string, status models.Status, created time.Time, completed *time.Time) models.Task {
	return models.Task{
		ID:          id,
		Title:       "Task " + id,
		Category:    models.CategoryDevelopment,
		Status:      status,
		CreatedAt:   created,
		CompletedAt: completed,
		Agent:       models.AgentManual,
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestSummarize(t *testing.T) {
	created := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	done := created.Add(time.Hour)

	tasks := []models.Task{
		taskAt("1", models.StatusTodo, created, nil),
		taskAt("2", models.StatusTodo, created, nil),
		taskAt("3", models.StatusInProgress, created, nil),
		taskAt("4", models.StatusDone, created, ptr(done)),
	}

	stats := Summarize(tasks)
	if stats.Total != 4 || stats.Todo != 2 || stats.InProgress != 1 || stats.Done != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	empty := Summarize(nil)
	if empty.Total != 0 {
		t.Errorf("expected zero stats for nil input, got %+v", empty)
	}
}

func TestColumns(t *testing.T) {
	created := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	done := created.Add(time.Hour)

	tasks := []models.Task{
		taskAt("a", models.StatusDone, created, ptr(done)),
		taskAt("b", models.StatusTodo, created, nil),
		taskAt("c", models.StatusTodo, created, nil),
	}

	columns := Columns(tasks)
	if len(columns) != 3 {
		t.Fatalf("expected 3 lanes, got %d", len(columns))
	}
	if columns[0].Status != models.StatusTodo || len(columns[0].Tasks) != 2 {
		t.Errorf("todo lane wrong: %+v", columns[0])
	}
	if columns[0].Tasks[0].ID != "b" || columns[0].Tasks[1].ID != "c" {
		t.Error("lane should preserve input order")
	}
	if len(columns[1].Tasks) != 0 {
		t.Errorf("in-progress lane should be empty, got %d", len(columns[1].Tasks))
	}
	if len(columns[2].Tasks) != 1 || columns[2].Tasks[0].ID != "a" {
		t.Errorf("done lane wrong: %+v", columns[2])
	}
}

func TestGroupByWeek(t *testing.T) {
	now := time.Date(2026, time.February, 12, 12, 0, 0, 0, time.UTC)

	t.Run("buckets by completion then creation time", func(t *testing.T) {
		thisWeek := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
		lastWeek := time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)

		tasks := []models.Task{
			// Created last week but finished this week: groups by completion.
			taskAt("1", models.StatusDone, lastWeek, ptr(thisWeek)),
			taskAt("2", models.StatusTodo, thisWeek, nil),
			taskAt("3", models.StatusInProgress, lastWeek, nil),
		}

		weeks := GroupByWeek(tasks, now)
		if len(weeks) != 2 {
			t.Fatalf("expected 2 weeks, got %d", len(weeks))
		}

		if !weeks[0].Current {
			t.Error("newest week should be marked current")
		}
		if len(weeks[0].Tasks) != 2 || weeks[0].Done != 1 {
			t.Errorf("current week wrong: %+v", weeks[0])
		}
		if weeks[1].Current || len(weeks[1].Tasks) != 1 {
			t.Errorf("previous week wrong: %+v", weeks[1])
		}
	})

	t.Run("orders newest week first across years", func(t *testing.T) {
		tasks := []models.Task{
			taskAt("old", models.StatusTodo, time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), nil),
			taskAt("new", models.StatusTodo, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), nil),
		}

		weeks := GroupByWeek(tasks, now)
		if len(weeks) != 2 || weeks[0].Year != 2026 || weeks[1].Year != 2025 {
			t.Errorf("unexpected ordering: %+v", weeks)
		}
	})

	t.Run("january tasks may fall in the previous iso year", func(t *testing.T) {
		// 2027-01-01 is a Friday inside ISO week 53 of 2026.
		tasks := []models.Task{
			taskAt("edge", models.StatusTodo, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), nil),
		}

		weeks := GroupByWeek(tasks, now)
		if len(weeks) != 1 {
			t.Fatalf("expected 1 week, got %d", len(weeks))
		}
		if weeks[0].Year != 2026 || weeks[0].Week != 53 {
			t.Errorf("expected 2026 week 53, got year %d week %d", weeks[0].Year, weeks[0].Week)
		}
	})

	t.Run("range spans monday through sunday", func(t *testing.T) {
		tasks := []models.Task{
			taskAt("1", models.StatusTodo, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), nil),
		}

		weeks := GroupByWeek(tasks, now)
		// Feb 9 2026 is a Monday.
		if weeks[0].Range != "Feb 9 - 15" {
			t.Errorf("unexpected range: %q", weeks[0].Range)
		}
	})

	t.Run("range crossing a month boundary names both months", func(t *testing.T) {
		tasks := []models.Task{
			taskAt("1", models.StatusTodo, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), nil),
		}

		weeks := GroupByWeek(tasks, now)
		// Mar 30 2026 is a Monday, the week ends Apr 5.
		if weeks[0].Range != "Mar 30 - Apr 5" {
			t.Errorf("unexpected range: %q", weeks[0].Range)
		}
	})

	t.Run("empty input yields no weeks", func(t *testing.T) {
		if weeks := GroupByWeek(nil, now); len(weeks) != 0 {
			t.Errorf("expected no weeks, got %+v", weeks)
		}
	})
}

func TestRecentActivity(t *testing.T) {
	created := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("orders by completion time and skips unfinished work", func(t *testing.T) {
		tasks := []models.Task{
			taskAt("todo", models.StatusTodo, created, nil),
			taskAt("early", models.StatusDone, created, ptr(created.Add(1*time.Hour))),
			taskAt("late", models.StatusDone, created, ptr(created.Add(5*time.Hour))),
		}

		feed := RecentActivity(tasks)
		if len(feed) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(feed))
		}
		if feed[0].ID != "late" || feed[1].ID != "early" {
			t.Errorf("unexpected order: %s, %s", feed[0].ID, feed[1].ID)
		}
	})

	t.Run("caps the feed", func(t *testing.T) {
		var tasks []models.Task
		for i := 0; i < activityLimit+3; i++ {
			tasks = append(tasks, taskAt(
				string(rune('a'+i)),
				models.StatusDone,
				created,
				ptr(created.Add(time.Duration(i)*time.Minute)),
			))
		}

		feed := RecentActivity(tasks)
		if len(feed) != activityLimit {
			t.Errorf("expected %d entries, got %d", activityLimit, len(feed))
		}
	})
}
