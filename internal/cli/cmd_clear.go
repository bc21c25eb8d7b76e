package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
)

// ClearCmd returns the clear command.
func ClearCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "clear",
		Short: "Clear the session and its state file",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if err := sess.Clear(); err != nil {
				return err
			}

			o.Println("Session cleared")

			return nil
		},
	}
}
