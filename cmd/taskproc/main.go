// Package main provides taskproc, a stateful command-driven task list
// processor: filters and sorts applied in one invocation carry over to the
// next through a small session state file.
package main

import (
	"os"
	"strings"

	"taskproc/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env))
}
