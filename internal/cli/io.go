package cli

import (
	"fmt"
	"io"
)

// IO handles command output. Normal output goes to stdout; warnings and
// errors go to stderr. Warnings never change the exit code: skipped rows and
// stale-persist diagnostics are informational, not failures.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Warn writes a "warning:" line to stderr.
func (o *IO) Warn(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, append([]any{"warning:"}, a...)...)
}

// ErrWriter exposes the stderr writer for library code taking an io.Writer.
func (o *IO) ErrWriter() io.Writer {
	return o.errOut
}

// OutWriter exposes the stdout writer.
func (o *IO) OutWriter() io.Writer {
	return o.out
}
