package source

import "fmt"

// Span locates a region of the original template. Line and Column are
// zero-based, matching the positions the upstream parser records.
type Span struct {
	FilePath      string `json:"filePath,omitempty"`
	AbsoluteIndex int    `json:"absoluteIndex"`
	Line          int    `json:"line"`
	Column        int    `json:"column"`
	Length        int    `json:"length"`
}

// Undefined is the placeholder used when a diagnostic has no location.
var Undefined = Span{AbsoluteIndex: -1, Line: -1, Column: -1}

// IsUndefined reports whether the span carries no location.
func (s Span) IsUndefined() bool {
	return s.AbsoluteIndex < 0
}

// String renders the span as file(line,col) using one-based coordinates.
func (s Span) String() string {
	if s.IsUndefined() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s(%d,%d)", s.FilePath, s.Line+1, s.Column+1)
}
