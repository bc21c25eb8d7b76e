package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"taskproc/internal/task"
)

// ConfigCmd returns the config command.
func ConfigCmd(cfg *task.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("config", flag.ContinueOnError),
		Usage: "config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execConfig(o, cfg)
		},
	}
}

func execConfig(o *IO, cfg *task.Config) error {
	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("state_dir=" + cfg.StateDirAbs)
	o.Println("format=" + cfg.Format)

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
