package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"taskproc/internal/task"
)

// JSONReader parses structured-text task files: a top-level array of objects
// with the same field names as the CSV header. Required fields are id, title,
// and status; priority defaults to 1 and tags to empty.
type JSONReader struct{}

// jsonTask mirrors task.Task but keeps priority optional so the default can
// be distinguished from an explicit value.
type jsonTask struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Priority    *int     `json:"priority"`
	CreatedDate string   `json:"created_date"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"`
	DueDate     string   `json:"due_date"`
	Tags        []string `json:"tags"`
}

// CanHandle claims files with a .json extension.
func (r *JSONReader) CanHandle(path string) bool {
	return strings.HasSuffix(path, ".json")
}

// ReadTasks parses path. Entries violating the shared acceptance rules are
// skipped with a diagnostic; a file that is not a JSON array is an error.
func (r *JSONReader) ReadTasks(path string) ([]task.Task, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var entries []jsonTask

	unmarshalErr := json.Unmarshal(data, &entries)
	if unmarshalErr != nil {
		return nil, nil, fmt.Errorf("parse json: %w", unmarshalErr)
	}

	var (
		tasks []task.Task
		skips []string
	)

	for idx, entry := range entries {
		priority := task.DefaultPriority
		if entry.Priority != nil {
			priority = *entry.Priority
		}

		record := task.Task{
			ID:          entry.ID,
			Title:       entry.Title,
			Status:      entry.Status,
			Priority:    priority,
			CreatedDate: entry.CreatedDate,
			Description: entry.Description,
			Assignee:    entry.Assignee,
			DueDate:     entry.DueDate,
			Tags:        entry.Tags,
		}

		skip, ok := validate(&record, idx+1)
		if !ok {
			skips = append(skips, skip)

			continue
		}

		tasks = append(tasks, record)
	}

	return tasks, skips, nil
}
