package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"taskproc/internal/task"
)

// renderView writes the given records in the requested format.
func renderView(o *IO, format string, records []*task.Task) error {
	switch format {
	case task.FormatTable:
		renderTable(o, records)
		return nil
	case task.FormatJSON:
		return renderJSON(o, records)
	case task.FormatCSV:
		return renderCSV(o, records)
	default:
		return fmt.Errorf("%w: %s", task.ErrFormatInvalid, format)
	}
}

// tableColumns defines the table layout. Cell width is measured with
// runewidth so wide characters in titles keep columns aligned.
var tableColumns = []struct {
	name string
	cell func(*task.Task) string
}{
	{"ID", func(t *task.Task) string { return strconv.Itoa(t.ID) }},
	{"PRI", func(t *task.Task) string { return strconv.Itoa(t.Priority) }},
	{"STATUS", func(t *task.Task) string { return t.Status }},
	{"TITLE", func(t *task.Task) string { return t.Title }},
	{"DUE", func(t *task.Task) string { return t.DueDate }},
	{"ASSIGNEE", func(t *task.Task) string { return t.Assignee }},
	{"TAGS", func(t *task.Task) string { return strings.Join(t.Tags, ",") }},
}

func renderTable(o *IO, records []*task.Task) {
	if len(records) == 0 {
		o.Println("No tasks in view")

		return
	}

	widths := make([]int, len(tableColumns))
	for idx, col := range tableColumns {
		widths[idx] = runewidth.StringWidth(col.name)
	}

	rows := make([][]string, 0, len(records))

	for _, record := range records {
		row := make([]string, len(tableColumns))
		for idx, col := range tableColumns {
			row[idx] = col.cell(record)

			if width := runewidth.StringWidth(row[idx]); width > widths[idx] {
				widths[idx] = width
			}
		}

		rows = append(rows, row)
	}

	header := make([]string, len(tableColumns))
	for idx, col := range tableColumns {
		header[idx] = col.name
	}

	o.Println(padRow(header, widths))

	for _, row := range rows {
		o.Println(padRow(row, widths))
	}
}

// padRow joins cells with two-space gutters, padding each to its column width.
func padRow(cells []string, widths []int) string {
	var builder strings.Builder

	for idx, cell := range cells {
		if idx > 0 {
			builder.WriteString("  ")
		}

		builder.WriteString(cell)

		if idx < len(cells)-1 {
			padding := widths[idx] - runewidth.StringWidth(cell)
			builder.WriteString(strings.Repeat(" ", padding))
		}
	}

	return builder.String()
}

func renderJSON(o *IO, records []*task.Task) error {
	if records == nil {
		records = []*task.Task{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	o.Println(string(data))

	return nil
}

// renderCSV mirrors the source file column layout, so list output can round-
// trip back through load.
func renderCSV(o *IO, records []*task.Task) error {
	writer := csv.NewWriter(o.OutWriter())

	header := []string{
		"id", "title", "status", "priority", "created_date",
		"description", "assignee", "due_date", "tags",
	}

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Title,
			record.Status,
			strconv.Itoa(record.Priority),
			record.CreatedDate,
			record.Description,
			record.Assignee,
			record.DueDate,
			strings.Join(record.Tags, ","),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}
