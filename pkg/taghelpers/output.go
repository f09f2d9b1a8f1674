package taghelpers

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Output is what a tag occurrence renders to. Tag helpers rename the tag,
// edit attributes, replace the content or suppress the element.
type Output struct {
	TagName    string
	TagMode    TagMode
	Attributes []Attribute

	content         strings.Builder
	contentModified bool
	suppressed      bool
	childContent    func() (string, error)
}

// IsContentModified reports whether any tag helper set the content.
func (o *Output) IsContentModified() bool {
	return o.contentModified
}

// SetContent replaces the content with escaped text.
func (o *Output) SetContent(text string) {
	o.content.Reset()
	o.content.WriteString(html.EscapeString(text))
	o.contentModified = true
}

// SetHTMLContent replaces the content with markup.
func (o *Output) SetHTMLContent(markup string) {
	o.content.Reset()
	o.content.WriteString(markup)
	o.contentModified = true
}

// AppendHTML appends markup to the content.
func (o *Output) AppendHTML(markup string) {
	o.content.WriteString(markup)
	o.contentModified = true
}

// Content returns the current content as markup.
func (o *Output) Content() string {
	return o.content.String()
}

// ChildContent renders the body of the tag occurrence. The body is
// rendered once; later calls return the same markup.
func (o *Output) ChildContent() (string, error) {
	if o.childContent == nil {
		return "", nil
	}
	return o.childContent()
}

// SetAttribute replaces the first attribute named name or appends one.
func (o *Output) SetAttribute(name string, value any) {
	for i := range o.Attributes {
		if o.Attributes[i].Name == name {
			o.Attributes[i].Value = value
			return
		}
	}
	o.Attributes = append(o.Attributes, Attribute{Name: name, Value: value})
}

// RemoveAttribute removes every attribute named name.
func (o *Output) RemoveAttribute(name string) {
	kept := o.Attributes[:0]
	for _, a := range o.Attributes {
		if a.Name != name {
			kept = append(kept, a)
		}
	}
	o.Attributes = kept
}

// SuppressOutput drops the element and its content.
func (o *Output) SuppressOutput() {
	o.suppressed = true
}

// WriteTo writes the element. An empty TagName writes the content only.
func (o *Output) WriteTo(w io.Writer) (int64, error) {
	if o.suppressed {
		return 0, nil
	}

	var sb strings.Builder
	if o.TagName != "" {
		sb.WriteString("<" + o.TagName)
		for _, a := range o.Attributes {
			writeAttribute(&sb, a)
		}
		switch o.TagMode {
		case TagModeSelfClosing:
			sb.WriteString(" />")
		default:
			sb.WriteString(">")
		}
	}
	if o.TagName == "" || o.TagMode == TagModeStartTagAndEndTag {
		sb.WriteString(o.content.String())
	}
	if o.TagName != "" && o.TagMode == TagModeStartTagAndEndTag {
		sb.WriteString("</" + o.TagName + ">")
	}

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func writeAttribute(sb *strings.Builder, a Attribute) {
	sb.WriteString(" " + a.Name)
	if a.Style == ValueStyleMinimized {
		return
	}
	sb.WriteString(`="`)
	switch v := a.Value.(type) {
	case nil:
	case HTMLString:
		sb.WriteString(string(v))
	case string:
		sb.WriteString(html.EscapeString(v))
	default:
		sb.WriteString(html.EscapeString(fmt.Sprint(v)))
	}
	sb.WriteString(`"`)
}
