package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
)

// ResetCmd returns the reset command.
func ResetCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "reset",
		Short: "Reset the view, clearing recorded filters",
		Long: "Reset the current view to all loaded tasks and clear the filter\n" +
			"and sort history recorded in the session state. The source file\n" +
			"stays loaded.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			sess.ResetView()
			o.Printf("View reset: %d tasks\n", sess.Store().ViewCount())

			return nil
		},
	}
}
