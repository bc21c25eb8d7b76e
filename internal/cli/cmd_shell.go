package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"taskproc/internal/session"
	"taskproc/internal/task"
)

// shellCommands drives tab completion and the shell help listing.
var shellCommands = []string{
	"load", "reload", "list", "status", "show", "filter", "sort",
	"tag", "notags", "search", "reset", "clear", "help", "exit", "quit",
}

// ShellCmd returns the shell command: an interactive session running the
// same operations as the one-shot subcommands against a single in-memory
// store. Filters and sorts are still recorded, so quitting the shell and
// running one-shot commands continues the same view.
func ShellCmd(cfg *task.Config, sess *session.Coordinator, _ io.Reader, env map[string]string) *Command {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "shell",
		Short: "Interactive session",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return runShell(o, cfg, sess, env)
		},
	}
}

func runShell(o *IO, cfg *task.Config, sess *session.Coordinator, env map[string]string) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string

		for _, name := range shellCommands {
			if strings.HasPrefix(name, prefix) {
				matches = append(matches, name)
			}
		}

		return matches
	})

	histPath := historyFile(env)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	o.Println("taskproc shell. Type 'help' for commands, 'exit' to leave.")

	for {
		input, err := line.Prompt("taskproc> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if done := shellDispatch(o, cfg, sess, input); done {
			break
		}
	}

	saveHistory(line, histPath)

	return nil
}

// shellDispatch executes one shell line. Returns true when the shell should
// exit. Command errors are printed, never returned: a bad expression must not
// end the session.
func shellDispatch(o *IO, cfg *task.Config, sess *session.Coordinator, input string) bool {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	var err error

	switch name {
	case "exit", "quit", "q":
		return true
	case "help", "?":
		printShellHelp(o)
	case "load":
		err = shellLoad(o, sess, rest)
	case "reload":
		err = shellReload(o, sess)
	case "list", "ls":
		err = shellList(o, cfg, sess, rest)
	case "status":
		shellStatus(o, sess)
	case "show":
		err = shellShow(o, sess, rest)
	case "filter":
		err = shellNarrow(o, sess, rest, "filter requires an expression", sess.ApplyFilter)
	case "sort":
		err = shellNarrow(o, sess, rest, "sort requires a field", sess.ApplySort)
	case "tag":
		err = shellTag(o, sess, rest)
	case "notags":
		sess.FindNoTags()
		o.Printf("%d of %d tasks in view\n", sess.Store().ViewCount(), sess.Store().TotalCount())
	case "search":
		err = shellSearch(o, sess, rest)
	case "reset":
		sess.ResetView()
		o.Printf("View reset: %d tasks\n", sess.Store().ViewCount())
	case "clear":
		err = sess.Clear()
		if err == nil {
			o.Println("Session cleared")
		}
	default:
		o.Printf("Unknown command: %s (type 'help' for commands)\n", name)
	}

	if err != nil {
		o.ErrPrintln("error:", err)
	}

	return false
}

func shellLoad(o *IO, sess *session.Coordinator, path string) error {
	if path == "" {
		return errors.New("load requires a file argument")
	}

	if err := sess.LoadFromFile(path); err != nil {
		return err
	}

	o.Printf("Loaded %d tasks from %s\n", sess.Store().TotalCount(), path)

	return nil
}

func shellReload(o *IO, sess *session.Coordinator) error {
	if err := sess.Reload(); err != nil {
		return err
	}

	o.Printf("Reloaded %d tasks from %s\n", sess.Store().TotalCount(), sess.Source())

	return nil
}

func shellList(o *IO, cfg *task.Config, sess *session.Coordinator, rest string) error {
	format := cfg.Format
	if rest != "" {
		format = rest
	}

	if !task.IsValidFormat(format) {
		return fmt.Errorf("%w: %s", task.ErrFormatInvalid, format)
	}

	return renderView(o, format, sess.Store().View())
}

func shellStatus(o *IO, sess *session.Coordinator) {
	if sess.Source() == "" {
		o.Println("No session. Use 'load <file>' first.")

		return
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
}

func shellShow(o *IO, sess *session.Coordinator, rest string) error {
	id, err := strconv.Atoi(rest)
	if err != nil {
		return fmt.Errorf("invalid id: %q", rest)
	}

	record := sess.Store().Get(id)
	if record == nil {
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}

	printTask(o, record)

	return nil
}

func shellNarrow(o *IO, sess *session.Coordinator, expr, missing string, apply func(string) error) error {
	if expr == "" {
		return errors.New(missing)
	}

	if sess.Source() == "" {
		return task.ErrNoSourceFile
	}

	if err := apply(expr); err != nil {
		return err
	}

	o.Printf("%d of %d tasks in view\n", sess.Store().ViewCount(), sess.Store().TotalCount())

	return nil
}

func shellTag(o *IO, sess *session.Coordinator, tag string) error {
	if tag == "" {
		return errors.New("tag requires a tag argument")
	}

	if sess.Source() == "" {
		return task.ErrNoSourceFile
	}

	sess.FindByTag(tag)
	o.Printf("%d of %d tasks in view\n", sess.Store().ViewCount(), sess.Store().TotalCount())

	return nil
}

func shellSearch(o *IO, sess *session.Coordinator, text string) error {
	if text == "" {
		return errors.New("search requires a text argument")
	}

	if sess.Source() == "" {
		return task.ErrNoSourceFile
	}

	sess.Search(text)

	for _, record := range sess.Store().View() {
		o.Println(record.Summary())
	}

	return nil
}

func printShellHelp(o *IO) {
	o.Println("Commands:")
	o.Println("  load <file>       Load tasks from a .csv or .json file")
	o.Println("  reload            Re-read the current source file")
	o.Println("  list [format]     Show the current view (table|json|csv)")
	o.Println("  status            Show session summary and statistics")
	o.Println("  show <id>         Show one task in detail")
	o.Println("  filter <expr>     Narrow the view (e.g. priority>=3)")
	o.Println("  sort <field> [asc|desc]  Reorder the view")
	o.Println("  tag <tag>         Narrow the view by tag")
	o.Println("  notags            Narrow the view to untagged tasks")
	o.Println("  search <text>     Narrow the view by title/description text")
	o.Println("  reset             Reset the view, clearing recorded filters")
	o.Println("  clear             Clear the session and its state file")
	o.Println("  exit              Leave the shell")
}

// historyFile returns the shell history path, "" when home is unknown.
func historyFile(env map[string]string) string {
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".taskproc_history")
	}

	return ""
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}
}
