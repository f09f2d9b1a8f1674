// Package taghelpers is the runtime the code generated by tagc calls into.
// A generated page embeds Page, creates its tag helpers with
// CreateTagHelper, and drives each tag occurrence through a ScopeManager,
// an ExecutionContext and a Runner.
package taghelpers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidIndexerAssignment is returned when a prefixed attribute is
	// bound to a map property that was never initialized.
	ErrInvalidIndexerAssignment = errors.New("invalid indexer assignment")
	// ErrScopeUnderflow is reported when a scope or writer is ended more
	// often than it was started.
	ErrScopeUnderflow = errors.New("scope underflow")
)

// TagMode describes how a tag occurrence was written.
type TagMode int

const (
	TagModeStartTagAndEndTag TagMode = iota
	TagModeSelfClosing
	TagModeStartTagOnly
)

// AttributeValueStyle records how an attribute value was quoted, so it is
// written back the same way.
type AttributeValueStyle int

const (
	ValueStylePlain AttributeValueStyle = iota
	ValueStyleMinimized
	ValueStyleExpression
)

// HTMLString is markup that is written without escaping.
type HTMLString string

// Writer is the destination of a Template.
type Writer = io.Writer

// Template is a deferred piece of markup.
type Template func(w Writer) error

// TagHelper is implemented by components bound to a tag.
type TagHelper interface {
	Process(ctx context.Context, tc *Context, out *Output) error
}

// Initializer is implemented by tag helpers that must prepare the shared
// Context before any tag helper of the occurrence runs.
type Initializer interface {
	Init(tc *Context)
}

// Orderer is implemented by tag helpers that need to run before or after
// the others on the same tag. Lower values run first; the default is 0.
type Orderer interface {
	Order() int
}

// Attribute is one attribute of a tag occurrence.
type Attribute struct {
	Name  string
	Value any
	Style AttributeValueStyle
}

// Context is the read-only view of a tag occurrence given to tag helpers.
type Context struct {
	TagName  string
	UniqueID string
	// AllAttributes holds HTML and bound attributes in source order.
	AllAttributes []Attribute
	// Items is shared with nested tag occurrences.
	Items map[any]any
}

// Attribute returns the first attribute named name.
func (c *Context) Attribute(name string) (Attribute, bool) {
	for _, a := range c.AllAttributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Constructor is implemented by tag helpers that need setup before any
// attribute is bound, typically allocating the maps that prefix-matched
// attributes are written into.
type Constructor interface {
	Construct()
}

// CreateTagHelper allocates a tag helper and runs its Construct method
// when *T implements Constructor.
func CreateTagHelper[T any]() *T {
	th := new(T)
	if c, ok := any(th).(Constructor); ok {
		c.Construct()
	}
	return th
}

// InvalidIndexerAssignment builds the error returned by generated code when
// attribute targets a nil map property.
func InvalidIndexerAssignment(attribute, tagHelperType, property string) error {
	return fmt.Errorf("%w: cannot set attribute %q, %s.%s is nil",
		ErrInvalidIndexerAssignment, attribute, tagHelperType, property)
}
