package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// SearchCmd returns the search command.
func SearchCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "search <text>",
		Short: "Narrow the view by title/description text",
		Long: "Narrow the current view to tasks whose title or description\n" +
			"contains the text, case-insensitively. Unlike filter and sort,\n" +
			"the search is not recorded in the session state: it applies to\n" +
			"this invocation only.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errors.New("search requires a text argument")
			}

			if sess.Source() == "" {
				return task.ErrNoSourceFile
			}

			sess.Search(strings.Join(args, " "))

			for _, record := range sess.Store().View() {
				o.Println(record.Summary())
			}

			return nil
		},
	}
}
