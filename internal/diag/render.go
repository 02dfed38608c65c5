package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	redBold = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// WriterWantsColor reports whether f is a terminal that should receive
// colored output. NO_COLOR always wins.
func WriterWantsColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes diagnostics to w, one per line, optionally colored.
func Render(w io.Writer, errs []Error, colored bool) {
	for _, e := range errs {
		sev := e.Severity.String()
		if colored {
			switch e.Severity {
			case SeverityError:
				sev = redBold(sev)
			case SeverityWarning:
				sev = yellow(sev)
			default:
				sev = cyan(sev)
			}
			fmt.Fprintf(w, "%s %s %s %s\n", dim(fmt.Sprintf("%d..%d", e.Range.Start, e.Range.End)), sev, dim(fmt.Sprintf("[%d]", e.Code)), e.Message)
		} else {
			fmt.Fprintf(w, "%d..%d %s [%d] %s\n", e.Range.Start, e.Range.End, sev, e.Code, e.Message)
		}
	}
}
