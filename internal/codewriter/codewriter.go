// Package codewriter is the text sink the generator emits Go source through.
// It owns indentation, string-literal escaping, call templating and the
// //line directive regions that map generated statements back to template
// coordinates.
package codewriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/tagc/internal/source"
)

// LineMapping records that the generated line GeneratedLine (one-based)
// starts code taken from Source.
type LineMapping struct {
	Source        source.Span `json:"source"`
	GeneratedLine int         `json:"generatedLine"`
}

// Writer accumulates Go source text. The zero value is not usable; call New.
type Writer struct {
	sb          strings.Builder
	indent      int
	atLineStart bool
	lines       int // completed lines written so far
	fileName    string
	mappings    []LineMapping
}

// New creates a Writer for the generated file named fileName. The name is
// used by the directives that close a line pragma region.
func New(fileName string) *Writer {
	return &Writer{fileName: fileName, atLineStart: true}
}

// Write appends literal text, indenting every line that starts inside it.
func (w *Writer) Write(s string) *Writer {
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		segment := s
		if i >= 0 {
			segment = s[:i]
		}
		if segment != "" {
			if w.atLineStart {
				w.sb.WriteString(strings.Repeat("\t", w.indent))
				w.atLineStart = false
			}
			w.sb.WriteString(segment)
		}
		if i < 0 {
			break
		}
		w.newline()
		s = s[i+1:]
	}
	return w
}

// Writef appends formatted text.
func (w *Writer) Writef(format string, args ...any) *Writer {
	return w.Write(fmt.Sprintf(format, args...))
}

// WriteLine appends s followed by a newline.
func (w *Writer) WriteLine(s string) *Writer {
	w.Write(s)
	w.newline()
	return w
}

// WriteLinef appends a formatted line.
func (w *Writer) WriteLinef(format string, args ...any) *Writer {
	return w.WriteLine(fmt.Sprintf(format, args...))
}

// EnsureNewLine terminates the current line unless it is empty.
func (w *Writer) EnsureNewLine() *Writer {
	if !w.atLineStart {
		w.newline()
	}
	return w
}

func (w *Writer) newline() {
	w.sb.WriteByte('\n')
	w.lines++
	w.atLineStart = true
}

// Indent increases the indentation level.
func (w *Writer) Indent() { w.indent++ }

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Line returns the one-based number of the line the next write lands on.
func (w *Writer) Line() int {
	return w.lines + 1
}

// String returns the accumulated output.
func (w *Writer) String() string { return w.sb.String() }

// Mappings returns the line pragma regions written so far, in order.
func (w *Writer) Mappings() []LineMapping { return w.mappings }

// --- Blocks ---

// BuildScope writes `header {`, runs body one level deeper and closes the
// brace on its own line.
func (w *Writer) BuildScope(header string, body func()) {
	w.Write(header).WriteLine(" {")
	w.Indent()
	body()
	w.Dedent()
	w.EnsureNewLine().WriteLine("}")
}

// BuildLambda writes an anonymous func with the given signature, e.g.
// "func() error", and leaves the writer right after its closing brace so
// the literal can be used as a call argument.
func (w *Writer) BuildLambda(signature string, body func()) {
	w.Write(signature).WriteLine(" {")
	w.Indent()
	body()
	w.Dedent()
	w.EnsureNewLine().Write("}")
}

// --- Literals and calls ---

// WriteStringLiteral writes s as a Go interpreted string literal.
func (w *Writer) WriteStringLiteral(s string) *Writer {
	return w.Write(strconv.Quote(s))
}

// WriteStartAssignment writes `target = `.
func (w *Writer) WriteStartAssignment(target string) *Writer {
	return w.Write(target).Write(" = ")
}

// WriteStartMethodInvocation writes `target(`.
func (w *Writer) WriteStartMethodInvocation(target string) *Writer {
	return w.Write(target).Write("(")
}

// WriteParameterSeparator writes ", ".
func (w *Writer) WriteParameterSeparator() *Writer {
	return w.Write(", ")
}

// WriteEndMethodInvocation closes a call and, when endLine is set, the line.
func (w *Writer) WriteEndMethodInvocation(endLine bool) *Writer {
	w.Write(")")
	if endLine {
		w.newline()
	}
	return w
}

// WriteMethodInvocation writes a complete call statement on its own line.
// Arguments are emitted verbatim.
func (w *Writer) WriteMethodInvocation(target string, args ...string) *Writer {
	w.WriteStartMethodInvocation(target)
	w.Write(strings.Join(args, ", "))
	return w.WriteEndMethodInvocation(true)
}

// --- Line pragmas ---

// LinePragma wraps the code written by body in a //line region pointing at
// span. The region is closed by a directive that points back at the
// generated file, so later statements keep their real positions. Spans
// without a location or file path write body unmapped.
func (w *Writer) LinePragma(span source.Span, body func()) {
	if span.IsUndefined() || span.FilePath == "" {
		body()
		return
	}

	w.EnsureNewLine()
	w.directive(fmt.Sprintf("//line %s:%d:%d", span.FilePath, span.Line+1, span.Column+1))
	w.mappings = append(w.mappings, LineMapping{Source: span, GeneratedLine: w.Line()})

	body()

	w.EnsureNewLine()
	// The directive names the line that follows it.
	w.directive(fmt.Sprintf("//line %s:%d", w.fileName, w.Line()+1))
}

// directive writes a whole line at column one; the Go toolchain ignores
// indented //line comments.
func (w *Writer) directive(text string) {
	w.sb.WriteString(text)
	w.newline()
}
