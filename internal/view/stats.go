package view

import "taskproc/internal/task"

// StatusStats holds view member counts grouped into the known status buckets.
// Any status outside todo/in-progress/done lands in Other.
type StatusStats struct {
	Todo       int
	InProgress int
	Done       int
	Other      int
}

// Total returns the count across all buckets.
func (s StatusStats) Total() int {
	return s.Todo + s.InProgress + s.Done + s.Other
}

// StatusStats counts the current view members by status bucket.
func (s *Store) StatusStats() StatusStats {
	var stats StatusStats

	for _, record := range s.view {
		switch record.Status {
		case task.StatusTodo:
			stats.Todo++
		case task.StatusInProgress:
			stats.InProgress++
		case task.StatusDone:
			stats.Done++
		default:
			stats.Other++
		}
	}

	return stats
}

// AveragePriority returns the arithmetic mean priority over the current view,
// or 0.0 when the view is empty.
func (s *Store) AveragePriority() float64 {
	if len(s.view) == 0 {
		return 0.0
	}

	sum := 0
	for _, record := range s.view {
		sum += record.Priority
	}

	return float64(sum) / float64(len(s.view))
}

// OverdueCount counts view members with a due date strictly before today
// (ISO-8601 string comparison) whose status is not done. Records without a
// due date are never overdue.
func (s *Store) OverdueCount(today string) int {
	count := 0

	for _, record := range s.view {
		if record.DueDate == "" || record.Status == task.StatusDone {
			continue
		}

		if record.DueDate < today {
			count++
		}
	}

	return count
}
