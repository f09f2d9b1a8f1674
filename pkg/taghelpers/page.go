package taghelpers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Page is embedded by generated pages. It routes writes to the current
// writer and keeps the first write error; later writes are dropped.
type Page struct {
	out     io.Writer
	writers []io.Writer
	err     error

	attr attributeValues
}

// attributeValues accumulates the pieces of one conditional attribute.
type attributeValues struct {
	ec         *ExecutionContext
	name       string
	count      int
	style      AttributeValueStyle
	suppressed bool
	buffer     *strings.Builder
}

// Executable is implemented by generated pages.
type Executable interface {
	Execute(ctx context.Context) error
	SetOutput(w io.Writer)
	Err() error
}

// Render executes page with its output going to w.
func Render(ctx context.Context, page Executable, w io.Writer) error {
	page.SetOutput(w)
	if err := page.Execute(ctx); err != nil {
		return err
	}
	return page.Err()
}

// SetOutput sets the writer the page renders to.
func (p *Page) SetOutput(w io.Writer) {
	p.out = w
}

// Err returns the first error met while writing.
func (p *Page) Err() error {
	return p.err
}

func (p *Page) fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

func (p *Page) current() io.Writer {
	if n := len(p.writers); n > 0 {
		return p.writers[n-1]
	}
	if p.out == nil {
		return io.Discard
	}
	return p.out
}

func (p *Page) writeString(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, err := io.WriteString(p.current(), s)
	p.fail(err)
}

// Write writes value escaped. HTMLString, Output and Template values are
// written as markup.
func (p *Page) Write(value any) {
	if p.err != nil {
		return
	}
	w := p.current()
	switch v := value.(type) {
	case nil:
	case HTMLString:
		p.writeString(string(v))
	case string:
		p.writeString(html.EscapeString(v))
	case Template:
		p.fail(v(w))
	case io.WriterTo:
		_, err := v.WriteTo(w)
		p.fail(err)
	case fmt.Stringer:
		p.writeString(html.EscapeString(v.String()))
	default:
		p.writeString(html.EscapeString(fmt.Sprint(v)))
	}
}

// WriteLiteral writes value without escaping.
func (p *Page) WriteLiteral(value any) {
	switch v := value.(type) {
	case nil:
	case string:
		p.writeString(v)
	case HTMLString:
		p.writeString(string(v))
	default:
		p.writeString(fmt.Sprint(v))
	}
}

// PushWriter redirects output to w until the matching PopWriter.
func (p *Page) PushWriter(w io.Writer) {
	p.writers = append(p.writers, w)
}

// PopWriter restores the writer active before the last PushWriter.
func (p *Page) PopWriter() io.Writer {
	n := len(p.writers)
	if n == 0 {
		p.fail(ErrScopeUnderflow)
		return nil
	}
	w := p.writers[n-1]
	p.writers = p.writers[:n-1]
	return w
}

func (p *Page) beginCapture() {
	p.PushWriter(&strings.Builder{})
}

func (p *Page) endCapture() string {
	if sb, ok := p.PopWriter().(*strings.Builder); ok {
		return sb.String()
	}
	p.fail(ErrScopeUnderflow)
	return ""
}

// StartTagHelperWritingScope starts capturing a tag body.
func (p *Page) StartTagHelperWritingScope() { p.beginCapture() }

// EndTagHelperWritingScope stops capturing a tag body and returns it.
func (p *Page) EndTagHelperWritingScope() string { return p.endCapture() }

// BeginWriteTagHelperAttribute starts capturing an attribute value.
func (p *Page) BeginWriteTagHelperAttribute() { p.beginCapture() }

// EndWriteTagHelperAttribute stops capturing an attribute value and
// returns it.
func (p *Page) EndWriteTagHelperAttribute() string { return p.endCapture() }

// BeginAddHTMLAttributeValues starts an attribute made of count pieces.
// The attribute is added to ec by EndAddHTMLAttributeValues.
func (p *Page) BeginAddHTMLAttributeValues(ec *ExecutionContext, name string, count int, style AttributeValueStyle) {
	p.attr = attributeValues{ec: ec, name: name, count: count, style: style}
}

// AddHTMLAttributeValue adds one piece of the current attribute. A lone
// piece without prefix that is nil or false drops the attribute, and a
// lone true renders as the attribute name. Offsets locate the piece in
// the template and are not used for rendering.
func (p *Page) AddHTMLAttributeValue(prefix string, _ int, value any, _, _ int, isLiteral bool) {
	a := &p.attr
	if a.count == 1 && prefix == "" {
		switch v := value.(type) {
		case nil:
			a.suppressed = true
			return
		case bool:
			if !v {
				a.suppressed = true
				return
			}
			a.ec.AddHTMLAttribute(a.name, HTMLString(html.EscapeString(a.name)), a.style)
			a.suppressed = true
			return
		}
	}
	if value == nil {
		return
	}

	if a.buffer == nil {
		a.buffer = &strings.Builder{}
	}
	p.PushWriter(a.buffer)
	p.WriteLiteral(prefix)
	if isLiteral {
		p.WriteLiteral(value)
	} else {
		p.Write(value)
	}
	p.PopWriter()
}

// EndAddHTMLAttributeValues adds the accumulated attribute to ec unless a
// piece dropped it.
func (p *Page) EndAddHTMLAttributeValues(ec *ExecutionContext) {
	a := p.attr
	p.attr = attributeValues{}
	if a.suppressed {
		return
	}
	value := ""
	if a.buffer != nil {
		value = a.buffer.String()
	}
	ec.AddHTMLAttribute(a.name, HTMLString(value), a.style)
}
