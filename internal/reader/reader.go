// Package reader parses source task files into records. The format set is
// closed and known at build time; callers select an adapter by capability
// probe rather than open-ended dispatch.
package reader

import (
	"fmt"

	"taskproc/internal/task"
)

// Reader parses one source file format.
//
// ReadTasks returns the accepted records plus per-row skip diagnostics.
// Rows with id < 1 or an empty title/status are skipped with a diagnostic,
// not fatal; I/O failures and malformed files are errors.
type Reader interface {
	CanHandle(path string) bool
	ReadTasks(path string) ([]task.Task, []string, error)
}

// Registry returns the fixed set of supported readers in probe order.
func Registry() []Reader {
	return []Reader{&CSVReader{}, &JSONReader{}}
}

// Select returns the first reader claiming path, or nil if none does.
func Select(readers []Reader, path string) Reader {
	for _, r := range readers {
		if r.CanHandle(path) {
			return r
		}
	}

	return nil
}

// validate applies the shared row acceptance rules. It returns a skip
// diagnostic for rejected rows and normalizes the priority default.
func validate(record *task.Task, row int) (string, bool) {
	if record.ID < 1 {
		return fmt.Sprintf("row %d: invalid id, must be greater than 0", row), false
	}

	if record.Title == "" || record.Status == "" {
		return fmt.Sprintf("row %d: missing title or status", row), false
	}

	if record.Priority < 1 {
		record.Priority = task.DefaultPriority
	}

	return "", true
}
