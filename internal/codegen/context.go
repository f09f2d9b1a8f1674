package codegen

import (
	"fmt"

	"github.com/lhaig/tagc/internal/codewriter"
	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
)

// TagOccurrenceContext is the state of one tag occurrence. It lives while
// the TagHelper node that owns it is being rendered.
type TagOccurrenceContext struct {
	TagName string
	TagMode ir.TagMode

	// attribute name -> property accessor already assigned for it
	renderedBoundAttributes map[string]string
	// "<tag helper type>.<property>" pairs already guarded against nil
	verifiedPropertyDictionaries map[string]struct{}
}

// NewTagOccurrenceContext creates the state for one tag occurrence.
func NewTagOccurrenceContext(tagName string, mode ir.TagMode) *TagOccurrenceContext {
	return &TagOccurrenceContext{
		TagName:                      tagName,
		TagMode:                      mode,
		renderedBoundAttributes:      make(map[string]string),
		verifiedPropertyDictionaries: make(map[string]struct{}),
	}
}

// RenderedAccessor returns the accessor already assigned for attribute.
func (t *TagOccurrenceContext) RenderedAccessor(attribute string) (string, bool) {
	accessor, ok := t.renderedBoundAttributes[attribute]
	return accessor, ok
}

func (t *TagOccurrenceContext) recordAccessor(attribute, accessor string) {
	t.renderedBoundAttributes[attribute] = accessor
}

// verifyDictionary marks key as guarded and reports whether it was new.
func (t *TagOccurrenceContext) verifyDictionary(key string) bool {
	if _, ok := t.verifiedPropertyDictionaries[key]; ok {
		return false
	}
	t.verifiedPropertyDictionaries[key] = struct{}{}
	return true
}

// RenderingContext carries the state of one generation pass. It is owned
// by a single traversal and must not be shared between passes.
type RenderingContext struct {
	Output      *codewriter.Writer
	Diagnostics *diagnostic.Diagnostics
	Options     Options
	Items       map[any]any

	writers         []NodeWriter
	tag             *TagOccurrenceContext
	className       string
	imports         map[string]bool
	runtimeDeclared bool

	// onVisit, when set, observes every node the driver dispatches.
	onVisit func(*ir.Node)
}

func newRenderingContext(opts Options) *RenderingContext {
	opts = opts.withDefaults()
	ctx := &RenderingContext{
		Output:      codewriter.New(opts.GeneratedFileName),
		Diagnostics: diagnostic.New(),
		Options:     opts,
		Items:       opts.Items,
		imports:     make(map[string]bool),
	}
	if opts.DesignTime {
		ctx.writers = []NodeWriter{designTimeWriter{}}
	} else {
		ctx.writers = []NodeWriter{runtimeWriter{}}
	}
	return ctx
}

// DesignTime reports the emission mode of the pass.
func (c *RenderingContext) DesignTime() bool {
	return c.Options.DesignTime
}

// Symbols returns the generated identifiers of the pass.
func (c *RenderingContext) Symbols() Symbols {
	return c.Options.Symbols
}

// NodeWriter returns the active writer strategy.
func (c *RenderingContext) NodeWriter() NodeWriter {
	return c.writers[len(c.writers)-1]
}

// WithWriter makes w the active writer strategy while fn runs. Writers
// with scope hooks are entered after the push and exited before the pop.
func (c *RenderingContext) WithWriter(w NodeWriter, fn func()) {
	c.writers = append(c.writers, w)
	defer func() {
		c.writers = c.writers[:len(c.writers)-1]
	}()

	hooks, ok := w.(scopedWriter)
	if ok {
		hooks.Enter(c)
	}
	fn()
	if ok {
		hooks.Exit(c)
	}
}

// TagOccurrence returns the innermost tag occurrence, or nil outside one.
func (c *RenderingContext) TagOccurrence() *TagOccurrenceContext {
	return c.tag
}

// WithTagOccurrence makes t the current tag occurrence while fn runs and
// restores the enclosing one afterwards.
func (c *RenderingContext) WithTagOccurrence(t *TagOccurrenceContext, fn func()) {
	parent := c.tag
	c.tag = t
	defer func() { c.tag = parent }()
	fn()
}

// NextID returns the identifier of a new tag occurrence.
func (c *RenderingContext) NextID() string {
	if id, ok := c.Items[UniqueIDKey].(string); ok {
		return id
	}
	return c.Options.IDs.NextID()
}

// RenderNode dispatches n to the handler for its kind.
func (c *RenderingContext) RenderNode(n *ir.Node) {
	if n.Kind < 0 || n.Kind >= ir.KindCount {
		panic(fmt.Sprintf("codegen: %v", n.Kind))
	}
	if c.onVisit != nil {
		c.onVisit(n)
	}
	handlers[n.Kind](c, n)
}

// RenderChildren renders the children of n in order.
func (c *RenderingContext) RenderChildren(n *ir.Node) {
	for _, child := range n.Children {
		c.RenderNode(child)
	}
}

// member returns "<receiver>.<name>".
func (c *RenderingContext) member(name string) string {
	return c.Options.Symbols.Receiver + "." + name
}

// runtime returns "<runtime package>.<name>".
func (c *RenderingContext) runtime(name string) string {
	return c.Options.Symbols.RuntimePackage + "." + name
}

// executionContext returns the execution context field selector.
func (c *RenderingContext) executionContext() string {
	return c.member(c.Options.Symbols.ExecutionContextVariable)
}

// scopeManager returns the expression that yields the scope manager,
// building it on first use.
func (c *RenderingContext) scopeManager() string {
	return fmt.Sprintf("%s.%s(%s, %s)",
		c.member(c.Options.Symbols.ScopeManagerVariable),
		scopeManagerGetMethod,
		c.member(startTagHelperWritingScope),
		c.member(endTagHelperWritingScope))
}
