package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lhaig/tagc/internal/diagnostic"
)

var (
	failure = color.New(color.FgRed)
	warning = color.New(color.FgYellow)
	success = color.New(color.FgGreen)
	hint    = color.New(color.FgCyan)
)

// printDiagnostics writes one line per diagnostic, prefixed with the
// document path. Spans without a file are attributed to the document.
func printDiagnostics(w io.Writer, path string, diag *diagnostic.Diagnostics) {
	for _, d := range diag.All() {
		if d.Span.FilePath == "" && !d.Span.IsUndefined() {
			d.Span.FilePath = path
		}
		c := warning
		if d.Severity == diagnostic.Error {
			c = failure
		}
		fmt.Fprintf(w, "%s: %s\n", path, c.Sprint(d.String()))
		if d.Hint != "" {
			hint.Fprintf(w, "  hint: %s\n", d.Hint)
		}
	}
}

func printStale(w io.Writer, outPath, diff string) {
	warning.Fprintf(w, "Stale %s\n", outPath)
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			failure.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			success.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}
