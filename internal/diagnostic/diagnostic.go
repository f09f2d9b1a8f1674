// Package diagnostic collects the errors and warnings raised while
// validating, linting and generating a document. Nothing in here aborts
// generation; callers decide what a non-empty collection means.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lhaig/tagc/internal/source"
)

// Severity orders diagnostics from most to least serious.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

var severityNames = [...]string{Error: "error", Warning: "warning", Info: "info"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Diagnostic is one finding attached to a template location.
type Diagnostic struct {
	// ID is a stable code such as "TH1001"; ad-hoc findings leave it empty.
	ID       string
	Severity Severity
	Message  string
	// Span is source.Undefined when there is no location.
	Span source.Span
	Hint string
}

// String renders the diagnostic on one line, e.g.
// "error TH1001[Index.cshtml(3,10)]: ...".
func (d Diagnostic) String() string {
	label := d.Severity.String()
	if d.ID != "" {
		label += " " + d.ID
	}
	return fmt.Sprintf("%s[%s]: %s", label, d.Span, d.Message)
}

// Diagnostics is an append-only, insertion-ordered collection. The zero
// value is ready to use.
type Diagnostics struct {
	items []Diagnostic
}

// New returns an empty collection.
func New() *Diagnostics {
	return &Diagnostics{}
}

// Add appends d as is.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// Errorf appends an error without an ID.
func (d *Diagnostics) Errorf(span source.Span, format string, args ...any) {
	d.Add(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Span: span})
}

// Warningf appends a warning without an ID.
func (d *Diagnostics) Warningf(span source.Span, format string, args ...any) {
	d.Add(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span})
}

// WarningWithHint appends a warning that carries a suggested fix.
func (d *Diagnostics) WarningWithHint(span source.Span, msg, hint string) {
	d.Add(Diagnostic{Severity: Warning, Message: msg, Span: span, Hint: hint})
}

// Merge appends the diagnostics of other after the existing ones.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other != nil {
		d.items = append(d.items, other.items...)
	}
}

// All returns every diagnostic in insertion order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the number of diagnostics.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

func (d *Diagnostics) countWhere(match func(Diagnostic) bool) int {
	n := 0
	for _, item := range d.items {
		if match(item) {
			n++
		}
	}
	return n
}

// CountID returns how many diagnostics carry id.
func (d *Diagnostics) CountID(id string) int {
	return d.countWhere(func(item Diagnostic) bool { return item.ID == id })
}

// ErrorCount returns the number of errors.
func (d *Diagnostics) ErrorCount() int {
	return d.countWhere(func(item Diagnostic) bool { return item.Severity == Error })
}

// WarningCount returns the number of warnings.
func (d *Diagnostics) WarningCount() int {
	return d.countWhere(func(item Diagnostic) bool { return item.Severity == Warning })
}

// HasErrors reports whether any diagnostic is an error.
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns the errors in insertion order.
func (d *Diagnostics) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, item := range d.items {
		if item.Severity == Error {
			errs = append(errs, item)
		}
	}
	return errs
}

// Format renders every diagnostic, one per line, hints indented below:
//
//	error TH1001[Index.cshtml(3,10)]: code blocks must not appear in ...
//	  hint: write the value as a single expression
//
// Located diagnostics without a file path are attributed to filename.
func (d *Diagnostics) Format(filename string) string {
	lines := make([]string, 0, len(d.items))
	for _, item := range d.items {
		if item.Span.FilePath == "" && !item.Span.IsUndefined() {
			item.Span.FilePath = filename
		}
		line := item.String()
		if item.Hint != "" {
			line += "\n  hint: " + item.Hint
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
