package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// FilterCmd returns the filter command.
func FilterCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "filter <expr>",
		Short: "Narrow the view (e.g. priority>=3, status=todo)",
		Long: "Narrow the current view to tasks matching a filter expression\n" +
			"and record it in the session. Filters accumulate: each one\n" +
			"narrows the result of the previous.\n" +
			"\n" +
			"Expressions are field<op>value with operators =, !=, >, >=, <, <=\n" +
			"over fields id, title, status, priority, created_date, due_date,\n" +
			"assignee, description. Relational operators need a numeric or\n" +
			"date field.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errors.New("filter requires an expression argument")
			}

			if sess.Source() == "" {
				return task.ErrNoSourceFile
			}

			// Re-join so "status = todo" works unquoted.
			expr := strings.Join(args, " ")

			if err := sess.ApplyFilter(expr); err != nil {
				return err
			}

			o.Printf("%d of %d tasks in view\n", sess.Store().ViewCount(), sess.Store().TotalCount())

			return nil
		},
	}
}
