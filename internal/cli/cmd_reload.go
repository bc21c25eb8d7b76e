package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
)

// ReloadCmd returns the reload command.
func ReloadCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "reload",
		Short: "Re-read the current source file",
		Long: "Re-read the current source file from disk, refreshing the raw\n" +
			"data. Recorded filters are cleared; this is a fresh load of the\n" +
			"same file, not a view reconstruction.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if err := sess.Reload(); err != nil {
				return fmt.Errorf("reload: %w", err)
			}

			o.Printf("Reloaded %d tasks from %s\n", sess.Store().TotalCount(), sess.Source())

			return nil
		},
	}
}
