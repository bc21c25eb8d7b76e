package task

import "errors"

// Error variables shared across the CLI and session layers.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrStateDirEmpty      = errors.New("state_dir cannot be empty")
	ErrFormatInvalid      = errors.New("format must be table, json, or csv")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrNoSourceFile       = errors.New("no source file loaded")
	ErrNoTasksFound       = errors.New("no tasks found in file")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrTaskNotFound       = errors.New("task not found")
)
