package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// SortCmd returns the sort command.
func SortCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "sort <field> [asc|desc]",
		Short: "Reorder the view",
		Long: "Reorder the current view by a field and record the sort in the\n" +
			"session. Fields: id, title, status, priority, created_date,\n" +
			"due_date. Direction defaults to ascending. The sort is stable:\n" +
			"tasks with equal keys keep their relative order.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errors.New("sort requires a field argument")
			}

			if sess.Source() == "" {
				return task.ErrNoSourceFile
			}

			expr := strings.Join(args, " ")

			if err := sess.ApplySort(expr); err != nil {
				return err
			}

			o.Printf("Sorted %d tasks\n", sess.Store().ViewCount())

			return nil
		},
	}
}
