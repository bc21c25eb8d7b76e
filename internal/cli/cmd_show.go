package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// ShowCmd returns the show command.
func ShowCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "show <id>",
		Short: "Show one task in detail",
		Long: "Show every field of a single task, looked up by id in the\n" +
			"canonical store (the current view's filters do not apply).",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("show requires exactly one id argument")
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id: %q", args[0])
			}

			record := sess.Store().Get(id)
			if record == nil {
				return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
			}

			printTask(o, record)

			return nil
		},
	}
}

func printTask(o *IO, record *task.Task) {
	o.Printf("ID:       %d\n", record.ID)
	o.Printf("Title:    %s\n", record.Title)
	o.Printf("Status:   %s\n", record.Status)
	o.Printf("Priority: %d\n", record.Priority)

	if record.CreatedDate != "" {
		o.Printf("Created:  %s\n", record.CreatedDate)
	}

	if record.DueDate != "" {
		o.Printf("Due:      %s\n", record.DueDate)
	}

	if record.Assignee != "" {
		o.Printf("Assignee: %s\n", record.Assignee)
	}

	if len(record.Tags) > 0 {
		o.Printf("Tags:     %s\n", strings.Join(record.Tags, ", "))
	}

	if record.Description != "" {
		o.Println()
		o.Println(record.Description)
	}
}
