package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"taskproc/internal/task"
)

// CSVReader parses delimited-text task files.
type CSVReader struct{}

// csvColumns is the required header, by exact column name. Extra columns are
// ignored; column order follows the header, not this list.
var csvColumns = []string{
	"id", "title", "status", "priority", "created_date",
	"description", "assignee", "due_date", "tags",
}

// ErrCSVHeader reports a header row missing required columns.
var ErrCSVHeader = errors.New("csv header missing required columns")

// CanHandle claims files with a .csv extension.
func (r *CSVReader) CanHandle(path string) bool {
	return strings.HasSuffix(path, ".csv")
}

// ReadTasks parses path. The tags column is a single comma-joined field and
// is split into tokens here, preserving order and duplicates.
func (r *CSVReader) ReadTasks(path string) ([]task.Task, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1 // row width checked against the header below

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		tasks []task.Task
		skips []string
	)

	for row := 2; ; row++ {
		fields, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return nil, nil, fmt.Errorf("read csv row %d: %w", row, readErr)
		}

		record, skip, ok := parseCSVRow(fields, columns, row)
		if !ok {
			skips = append(skips, skip)

			continue
		}

		tasks = append(tasks, record)
	}

	return tasks, skips, nil
}

// mapColumns resolves each required column name to its header position.
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for idx, name := range header {
		positions[strings.Trim(name, " \t")] = idx
	}

	columns := make(map[string]int, len(csvColumns))

	for _, name := range csvColumns {
		idx, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCSVHeader, name)
		}

		columns[name] = idx
	}

	return columns, nil
}

func parseCSVRow(fields []string, columns map[string]int, row int) (task.Task, string, bool) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(fields) {
			return ""
		}

		return strings.Trim(fields[idx], " \t")
	}

	id, idErr := strconv.Atoi(cell("id"))
	if idErr != nil {
		return task.Task{}, fmt.Sprintf("row %d: invalid id %q", row, cell("id")), false
	}

	// Missing or non-numeric priority defaults to 1.
	priority, priErr := strconv.Atoi(cell("priority"))
	if priErr != nil {
		priority = task.DefaultPriority
	}

	record := task.Task{
		ID:          id,
		Title:       cell("title"),
		Status:      cell("status"),
		Priority:    priority,
		CreatedDate: cell("created_date"),
		Description: cell("description"),
		Assignee:    cell("assignee"),
		DueDate:     cell("due_date"),
		Tags:        splitTags(cell("tags")),
	}

	skip, ok := validate(&record, row)
	if !ok {
		return task.Task{}, skip, false
	}

	return record, "", true
}

// splitTags splits the comma-joined tags cell into tokens. An empty cell
// yields no tags.
func splitTags(field string) []string {
	if field == "" {
		return nil
	}

	return strings.Split(field, ",")
}
