package view

import (
	"testing"

	"taskproc/internal/task"
)

func TestStatusStats(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Load([]task.Task{
		{ID: 1, Title: "a", Status: "todo", Priority: 1},
		{ID: 2, Title: "b", Status: "todo", Priority: 1},
		{ID: 3, Title: "c", Status: "in-progress", Priority: 1},
		{ID: 4, Title: "d", Status: "done", Priority: 1},
		{ID: 5, Title: "e", Status: "blocked", Priority: 1},
	})

	stats := s.StatusStats()

	if stats.Todo != 2 || stats.InProgress != 1 || stats.Done != 1 || stats.Other != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	if stats.Total() != 5 {
		t.Fatalf("Total = %d, want 5", stats.Total())
	}

	// Stats follow the view, not the canonical store.
	s.ApplyFilter(FilterSpec{Field: FieldStatus, Op: OpEqual, Value: "todo"})

	if got := s.StatusStats(); got.Total() != 2 || got.Todo != 2 {
		t.Fatalf("filtered stats = %+v", got)
	}
}

func TestAveragePriority(t *testing.T) {
	t.Parallel()

	s := NewStore()

	if got := s.AveragePriority(); got != 0.0 {
		t.Fatalf("empty view average = %v, want 0.0", got)
	}

	s.Load([]task.Task{
		{ID: 1, Title: "a", Status: "todo", Priority: 2},
		{ID: 2, Title: "b", Status: "todo", Priority: 4},
		{ID: 3, Title: "c", Status: "todo", Priority: 3},
		{ID: 4, Title: "d", Status: "todo", Priority: 5},
		{ID: 5, Title: "e", Status: "todo", Priority: 1},
	})

	if got := s.AveragePriority(); got != 3.0 {
		t.Fatalf("average = %v, want 3.0", got)
	}
}

func TestOverdueCount(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Load([]task.Task{
		{ID: 1, Title: "past due", Status: "todo", Priority: 1, DueDate: "2025-01-10"},
		{ID: 2, Title: "past but done", Status: "done", Priority: 1, DueDate: "2025-01-10"},
		{ID: 3, Title: "due today", Status: "todo", Priority: 1, DueDate: "2025-02-01"},
		{ID: 4, Title: "future", Status: "todo", Priority: 1, DueDate: "2025-03-01"},
		{ID: 5, Title: "no due date", Status: "todo", Priority: 1},
	})

	// Strictly-before comparison: the record due today is not overdue.
	if got := s.OverdueCount("2025-02-01"); got != 1 {
		t.Fatalf("OverdueCount = %d, want 1", got)
	}
}
