package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// TagCmd returns the tag command.
func TagCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("tag", flag.ContinueOnError)
	fs.Bool("none", false, "Show only tasks with no tags")

	return &Command{
		Flags: fs,
		Usage: "tag <tag> | --none",
		Short: "Narrow the view by tag",
		Long: "Narrow the current view to tasks carrying the given tag, or with\n" +
			"--none to tasks carrying no tags at all. Tag narrowing is recorded\n" +
			"in the session; --none applies to this invocation only.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			noTags, _ := fs.GetBool("none")

			if sess.Source() == "" {
				return task.ErrNoSourceFile
			}

			switch {
			case noTags && len(args) == 0:
				sess.FindNoTags()
			case !noTags && len(args) == 1:
				sess.FindByTag(args[0])
			default:
				return errors.New("tag requires exactly one tag argument or --none")
			}

			o.Printf("%d of %d tasks in view\n", sess.Store().ViewCount(), sess.Store().TotalCount())

			return nil
		},
	}
}
