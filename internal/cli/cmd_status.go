package cli

import (
	"context"
	"time"

	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
)

// StatusCmd returns the status command.
func StatusCmd(sess *session.Coordinator) *Command {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "status",
		Short: "Show session summary and statistics",
		Long: "Show the session source file, record counts, status breakdown,\n" +
			"average priority, and overdue count for the current view.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if sess.Source() == "" {
				o.Println("No session. Run 'taskproc load <file>' first.")

				return nil
			}

			store := sess.Store()
			stats := store.StatusStats()
			today := time.Now().UTC().Format("2006-01-02")

			o.Println("Source:", sess.Source())
			o.Printf("Tasks: %d in view of %d total\n", store.ViewCount(), store.TotalCount())
			o.Printf("Status: %d todo, %d in-progress, %d done, %d other\n",
				stats.Todo, stats.InProgress, stats.Done, stats.Other)
			o.Printf("Average priority: %.2f\n", store.AveragePriority())
			o.Printf("Overdue: %d\n", store.OverdueCount(today))

			if history := sess.History(); len(history) > 0 {
				o.Printf("Recorded actions: %d\n", len(history))

				for _, action := range history {
					o.Printf("  %s %s\n", action.Kind, action.Payload)
				}
			}

			return nil
		},
	}
}
