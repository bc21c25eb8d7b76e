// Package task defines the task record schema and tool configuration.
package task

import (
	"fmt"
	"strings"
)

// Status constants. Records may carry other status strings; these are the
// buckets the aggregates know about.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Priority defaults. Priority is conventionally 1-5 but the store does not
// range-enforce it; readers clamp missing/invalid values to DefaultPriority.
const DefaultPriority = 1

// Task is a single task record. Immutable after construction: the view layer
// holds shared references and never writes through them.
//
// Optional text fields use "" for absent. DueDate and CreatedDate are
// ISO-8601 dates (YYYY-MM-DD), which compare correctly as strings.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Priority    int      `json:"priority"`
	CreatedDate string   `json:"created_date,omitempty"`
	Description string   `json:"description,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTag reports whether the task's tag list contains tag.
func (t *Task) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}

	return false
}

// Summary returns the one-line representation used by list output and the
// replay diagnostics.
//
// Format: "ID: 1 | Title: Fix bug | Status: todo | Priority: 3".
func (t *Task) Summary() string {
	return fmt.Sprintf("ID: %d | Title: %s | Status: %s | Priority: %d", t.ID, t.Title, t.Status, t.Priority)
}

// MatchesText reports whether text occurs case-insensitively in the task's
// title or description.
func (t *Task) MatchesText(text string) bool {
	needle := strings.ToLower(text)

	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}

	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), needle)
}
