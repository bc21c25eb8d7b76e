package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
)

// LoadCmd returns the load command.
func LoadCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "load <file>",
		Short: "Load tasks from a .csv or .json file",
		Long: "Load tasks from a source file, replacing the current session.\n" +
			"The file path is recorded in the session state, and any filters\n" +
			"recorded against the previous data are discarded.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("load requires exactly one file argument")
			}

			path := args[0]

			if err := sess.LoadFromFile(path); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			o.Printf("Loaded %d tasks from %s\n", sess.Store().TotalCount(), path)

			return nil
		},
	}
}
