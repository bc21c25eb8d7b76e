package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"taskproc/internal/reader"
	"taskproc/internal/session"
	"taskproc/internal/task"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		printUsage(o)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := task.LoadConfig(task.LoadConfigInput{
		WorkDirOverride:  flags.workDir,
		ConfigPath:       flags.configPath,
		StateDirOverride: flags.stateDir,
		Env:              env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(o)

		return 0
	}

	name := flags.remaining[0]

	// Handle help flags
	if name == "help" || name == "-h" || name == helpFlag {
		printUsage(o)

		return 0
	}

	// Build the session: every command except help continues the previous
	// invocation's view.
	ledger := session.NewLedger(cfg.StateDirAbs)
	sess := session.NewCoordinator(reader.Registry(), ledger, errOut)
	sess.Restore()

	commands := registry(&cfg, sess, in, env)

	cmd, ok := commands[name]
	if !ok {
		o.ErrPrintln("error: unknown command:", name)
		printUsage(o)

		return 1
	}

	return cmd.Run(context.Background(), o, flags.remaining[1:])
}

// registry builds the command set keyed by name.
func registry(cfg *task.Config, sess *session.Coordinator, in io.Reader, env map[string]string) map[string]*Command {
	commands := []*Command{
		LoadCmd(sess),
		ReloadCmd(sess),
		ClearCmd(sess),
		StatusCmd(sess),
		ListCmd(cfg, sess),
		ShowCmd(sess),
		FilterCmd(sess),
		SortCmd(sess),
		TagCmd(sess),
		SearchCmd(sess),
		ResetCmd(sess),
		ShellCmd(cfg, sess, in, env),
		ConfigCmd(cfg),
	}

	byName := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name()] = cmd
	}

	return byName
}

type globalFlags struct {
	workDir    string
	configPath string
	stateDir   string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", task.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --state-dir flag
	if arg == "--state-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", task.ErrFlagRequiresArg, arg)
		}

		flags.stateDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--state-dir="); ok {
		flags.stateDir = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{"help"}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", task.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func printUsage(o *IO) {
	o.Println("taskproc - session-continuing task list processor")
	o.Println()
	o.Println("Usage: taskproc [global flags] <command> [args]")
	o.Println()
	o.Println("Commands:")
	o.Println("  load <file>            Load tasks from a .csv or .json file")
	o.Println("  reload                 Re-read the current source file")
	o.Println("  clear                  Clear the session and its state file")
	o.Println("  status                 Show session summary and statistics")
	o.Println("  list [flags]           Show the current view")
	o.Println("  show <id>              Show one task in detail")
	o.Println("  filter <expr>          Narrow the view (e.g. priority>=3, status=todo)")
	o.Println("  sort <field> [asc|desc] Reorder the view")
	o.Println("  tag <tag> | --none     Narrow the view by tag")
	o.Println("  search <text>          Narrow the view by title/description text")
	o.Println("  reset                  Reset the view, clearing recorded filters")
	o.Println("  shell                  Interactive session")
	o.Println("  config                 Show resolved configuration")
	o.Println("  help                   Show this help")
	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --cwd <dir>        Run as if started in <dir>")
	o.Println("  -c, --config <file>    Use an explicit config file")
	o.Println("      --state-dir <dir>  Directory for the session state file")
	o.Println()
	o.Println("Filters and sorts accumulate across invocations until 'reset',")
	o.Println("'load', or 'clear'.")
}
