package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// ListCmd returns the list command.
func ListCmd(cfg *task.Config, sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.String("format", cfg.Format, "Output format (table|json|csv)")
	fs.Int("limit", 0, "Maximum tasks to show (0 = all)")
	fs.Int("offset", 0, "Skip first N tasks")

	return &Command{
		Flags: fs,
		Usage: "list [flags]",
		Short: "Show the current view",
		Long: "Show the current view: the loaded tasks as narrowed and ordered\n" +
			"by the filters and sorts recorded in this session.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			format, _ := fs.GetString("format")
			if !task.IsValidFormat(format) {
				return fmt.Errorf("%w: %s", task.ErrFormatInvalid, format)
			}

			limit, _ := fs.GetInt("limit")
			if limit < 0 {
				return errors.New("--limit must be non-negative")
			}

			offset, _ := fs.GetInt("offset")
			if offset < 0 {
				return errors.New("--offset must be non-negative")
			}

			records := sess.Store().View()

			if offset > len(records) {
				offset = len(records)
			}

			records = records[offset:]

			if limit > 0 && limit < len(records) {
				records = records[:limit]
			}

			return renderView(o, format, records)
		},
	}
}
