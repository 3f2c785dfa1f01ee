package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// progressReporter rewrites a single status line on a terminal. It is silent
// for pipes, files and JSON output.
type progressReporter struct {
	enabled bool
	out     io.Writer
	label   string
	start   time.Time
	spinner int
	lastLen int
}

func newProgressReporter(out io.Writer, label string, asJSON bool) *progressReporter {
	enabled := false
	if f, ok := out.(interface{ Fd() uintptr }); ok && !asJSON {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &progressReporter{
		enabled: enabled,
		out:     out,
		label:   label,
		start:   time.Now(),
	}
}

func (r *progressReporter) Step(status string) {
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	if len(status) > 88 {
		status = "..." + status[len(status)-85:]
	}
	r.printStatus(fmt.Sprintf("%s %s %s", frame, r.label, status))
}

func (r *progressReporter) Done() {
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s ready in %s", r.label, elapsed))
	fmt.Fprintln(r.out)
}

func (r *progressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.out, "\r%s", status)
}
