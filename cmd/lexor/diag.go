package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/parse"
)

var (
	errColor  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
	posColor  = color.New(color.Faint).SprintFunc()
)

// printDiags renders a diagnostic list for one file, with positions
// resolved against the source and severities colored when w is a
// terminal.
func printDiags(cfg *MainConfig, w io.Writer, path string, src []byte, log diag.List) {
	if len(log) == 0 {
		return
	}
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = cfg.colorize(f)
	}
	pos := parse.NewPosIndex(src)
	for _, d := range log {
		l, c := pos.LineCol(d.Span.Begin)
		sev := d.Severity.String()
		if colorize {
			switch d.Severity {
			case diag.Error:
				sev = errColor(sev)
			case diag.Warning:
				sev = warnColor(sev)
			}
		}
		at := fmt.Sprintf("%s:%d:%d", path, l+1, c+1)
		if colorize {
			at = posColor(at)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", at, sev, d.Code, d.Message)
	}
}
