package taghelpers

import (
	"maps"
	"sync"
)

// ExecutionContext tracks one tag occurrence while the page renders it:
// the tag helpers bound to it, its attributes, its body and its output.
type ExecutionContext struct {
	tagHelpers []TagHelper
	context    *Context
	output     *Output

	body      func() error
	start     func()
	end       func() string
	childOnce sync.Once
	child     string
	childErr  error
}

func newExecutionContext(
	tagName string,
	mode TagMode,
	uniqueID string,
	items map[any]any,
	body func() error,
	start func(),
	end func() string,
) *ExecutionContext {
	ec := &ExecutionContext{
		context: &Context{
			TagName:  tagName,
			UniqueID: uniqueID,
			Items:    items,
		},
		output: &Output{TagName: tagName, TagMode: mode},
		body:   body,
		start:  start,
		end:    end,
	}
	ec.output.childContent = ec.GetChildContent
	return ec
}

// Add registers a tag helper with the occurrence.
func (ec *ExecutionContext) Add(th TagHelper) {
	ec.tagHelpers = append(ec.tagHelpers, th)
}

// TagHelpers returns the registered tag helpers in registration order.
func (ec *ExecutionContext) TagHelpers() []TagHelper {
	return ec.tagHelpers
}

// AddHTMLAttribute records an attribute that no tag helper binds. It is
// visible to tag helpers and written with the element.
func (ec *ExecutionContext) AddHTMLAttribute(name string, value any, style AttributeValueStyle) {
	attr := Attribute{Name: name, Value: value, Style: style}
	ec.output.Attributes = append(ec.output.Attributes, attr)
	ec.context.AllAttributes = append(ec.context.AllAttributes, attr)
}

// AddTagHelperAttribute records the value of a bound attribute. It is
// visible to tag helpers but not written with the element.
func (ec *ExecutionContext) AddTagHelperAttribute(name string, value any, style AttributeValueStyle) {
	ec.context.AllAttributes = append(ec.context.AllAttributes,
		Attribute{Name: name, Value: value, Style: style})
}

// Context returns the view of the occurrence given to tag helpers.
func (ec *ExecutionContext) Context() *Context {
	return ec.context
}

// Output returns the element the occurrence renders to.
func (ec *ExecutionContext) Output() *Output {
	return ec.output
}

// Items returns the item bag shared with nested occurrences.
func (ec *ExecutionContext) Items() map[any]any {
	return ec.context.Items
}

// GetChildContent renders the body once, capturing it instead of writing
// it to the page.
func (ec *ExecutionContext) GetChildContent() (string, error) {
	ec.childOnce.Do(func() {
		if ec.body == nil {
			return
		}
		ec.start()
		err := ec.body()
		ec.child = ec.end()
		ec.childErr = err
	})
	return ec.child, ec.childErr
}

// SetOutputContent copies the rendered body into the output. Generated
// code calls it when no tag helper set the content.
func (ec *ExecutionContext) SetOutputContent() error {
	child, err := ec.GetChildContent()
	if err != nil {
		return err
	}
	ec.output.SetHTMLContent(child)
	return nil
}

func copyItems(items map[any]any) map[any]any {
	if items == nil {
		return make(map[any]any)
	}
	return maps.Clone(items)
}
