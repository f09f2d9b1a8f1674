// Package codegen turns a bound tag helper IR tree into Go source that
// drives the pkg/taghelpers runtime. A pass walks the tree depth-first and
// dispatches every node to the handler for its kind.
package codegen

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/lhaig/tagc/internal/codewriter"
	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
)

// LineMapping ties a generated line to the template span it came from.
type LineMapping = codewriter.LineMapping

// Result is the outcome of one generation pass. Diagnostics never stop a
// pass; Source is always complete.
type Result struct {
	Source       string
	Diagnostics  *diagnostic.Diagnostics
	LineMappings []LineMapping
}

// Generate renders doc. It panics when doc breaks the IR contract; run
// ir.Validate first on documents that were not produced by the binder.
func Generate(doc *ir.Node, opts Options) *Result {
	ctx := newRenderingContext(opts)
	ctx.RenderNode(doc)
	return ctx.result()
}

func (c *RenderingContext) result() *Result {
	if len(c.writers) != 1 {
		panic(fmt.Sprintf("codegen: %d writer scopes left open", len(c.writers)-1))
	}
	return &Result{
		Source:       c.Output.String(),
		Diagnostics:  c.Diagnostics,
		LineMappings: c.Output.Mappings(),
	}
}

type handler func(*RenderingContext, *ir.Node)

// handlers is indexed by ir.Kind; init refuses to start with a gap.
var handlers [ir.KindCount]handler

func init() {
	handlers = [ir.KindCount]handler{
		ir.KindDocument: renderDocument,
		ir.KindImport:   renderImport,
		ir.KindClass:    renderClass,
		ir.KindMethod:   renderMethod,
		ir.KindField:    renderField,

		ir.KindToken:       renderToken,
		ir.KindHTMLContent: func(c *RenderingContext, n *ir.Node) { c.NodeWriter().WriteHTMLContent(c, n) },
		ir.KindExpression:  func(c *RenderingContext, n *ir.Node) { c.NodeWriter().WriteExpression(c, n) },
		ir.KindCodeBlock:   func(c *RenderingContext, n *ir.Node) { c.NodeWriter().WriteCodeBlock(c, n) },
		ir.KindTemplate:    renderTemplate,

		ir.KindHTMLAttributeValue: func(c *RenderingContext, n *ir.Node) {
			c.NodeWriter().WriteHTMLAttributeValue(c, n)
		},
		ir.KindExpressionAttributeValue: func(c *RenderingContext, n *ir.Node) {
			c.NodeWriter().WriteExpressionAttributeValue(c, n)
		},
		ir.KindCodeAttributeValue: func(c *RenderingContext, n *ir.Node) {
			c.NodeWriter().WriteCodeAttributeValue(c, n)
		},

		ir.KindTagHelper:              renderTagHelper,
		ir.KindTagHelperBody:          renderTagHelperBody,
		ir.KindTagHelperCreate:        renderTagHelperCreate,
		ir.KindTagHelperExecute:       renderTagHelperExecute,
		ir.KindTagHelperHTMLAttribute: renderTagHelperHTMLAttribute,
		ir.KindTagHelperProperty:      renderTagHelperProperty,
		ir.KindTagHelperRuntime:       renderTagHelperRuntime,
	}
	for k, h := range handlers {
		if h == nil {
			panic(fmt.Sprintf("codegen: no handler for %s", ir.Kind(k)))
		}
	}
}

// --- structure ---

func renderDocument(ctx *RenderingContext, n *ir.Node) {
	out := ctx.Output
	out.WriteLine(generatedHeader)
	out.WriteLine("")
	out.WriteLinef("package %s", n.Name)

	var imports, rest []*ir.Node
	for _, c := range n.Children {
		if c.Kind == ir.KindImport {
			imports = append(imports, c)
		} else {
			rest = append(rest, c)
		}
	}

	needsContext := ir.Find(n, func(c *ir.Node) bool { return c.Kind == ir.KindMethod }) != nil
	needsRuntime := usesRuntime(ctx, n)
	if needsContext || needsRuntime || len(imports) > 0 {
		out.WriteLine("")
		out.WriteLine("import (")
		out.Indent()
		if needsContext {
			writeImport(ctx, "", contextImport)
		}
		if needsRuntime {
			alias := ctx.Symbols().RuntimePackage
			if alias == path.Base(ctx.Options.RuntimeImport) {
				alias = ""
			}
			writeImport(ctx, alias, ctx.Options.RuntimeImport)
		}
		for _, imp := range imports {
			ctx.RenderNode(imp)
		}
		out.Dedent()
		out.WriteLine(")")
	}

	for _, c := range rest {
		ctx.RenderNode(c)
	}
}

// usesRuntime reports whether the output of n references the runtime
// package.
func usesRuntime(ctx *RenderingContext, n *ir.Node) bool {
	prefix := ctx.Symbols().RuntimePackage + "."
	return ir.Find(n, func(c *ir.Node) bool {
		switch c.Kind {
		case ir.KindTagHelperCreate, ir.KindTemplate:
			return true
		case ir.KindTagHelperRuntime, ir.KindTagHelperBody, ir.KindTagHelperExecute,
			ir.KindTagHelperHTMLAttribute, ir.KindTagHelperProperty:
			return !ctx.DesignTime()
		case ir.KindClass:
			return strings.HasPrefix(c.BaseType, prefix)
		}
		return false
	}) != nil
}

func renderImport(ctx *RenderingContext, n *ir.Node) {
	writeImport(ctx, n.Alias, n.Name)
}

func writeImport(ctx *RenderingContext, alias, importPath string) {
	if ctx.imports[importPath] {
		return
	}
	ctx.imports[importPath] = true
	if alias != "" {
		ctx.Output.Write(alias + " ")
	}
	ctx.Output.WriteLine(strconv.Quote(importPath))
}

// renderClass writes the page struct, with fields and runtime scaffolding
// inside it, followed by its methods.
func renderClass(ctx *RenderingContext, n *ir.Node) {
	out := ctx.Output
	out.WriteLine("")
	out.BuildScope(fmt.Sprintf("type %s struct", n.Name), func() {
		if n.BaseType != "" {
			out.WriteLine(n.BaseType)
		}
		for _, c := range n.Children {
			if isStructMember(c) {
				ctx.RenderNode(c)
			}
		}
	})

	ctx.className = n.Name
	defer func() { ctx.className = "" }()
	for _, c := range n.Children {
		if !isStructMember(c) {
			ctx.RenderNode(c)
		}
	}
}

func isStructMember(n *ir.Node) bool {
	return n.Kind == ir.KindField || n.Kind == ir.KindTagHelperRuntime
}

func renderField(ctx *RenderingContext, n *ir.Node) {
	ctx.Output.WriteLinef("%s %s", n.Name, n.TypeName)
}

func renderMethod(ctx *RenderingContext, n *ir.Node) {
	if ctx.className == "" {
		panic(fmt.Sprintf("codegen: method %s outside a Class", n.Name))
	}
	out := ctx.Output
	out.WriteLine("")
	header := fmt.Sprintf("func (%s *%s) %s%s", ctx.Symbols().Receiver, ctx.className, n.Name, executeSignature)
	out.BuildScope(header, func() {
		ctx.RenderChildren(n)
		out.EnsureNewLine().WriteLine("return nil")
	})
}

// --- leaves ---

// renderToken writes code as it is; stray markup goes through the active
// writer like any other HTML content.
func renderToken(ctx *RenderingContext, n *ir.Node) {
	if n.TokenKind == ir.TokenCode {
		ctx.Output.Write(n.Content)
		return
	}
	ctx.NodeWriter().WriteHTMLContent(ctx, &ir.Node{
		Kind:     ir.KindHTMLContent,
		Span:     n.Span,
		Children: []*ir.Node{n},
	})
}

// renderTemplate writes an inline template as a taghelpers.Template value.
// Content rendered inside goes to the writer the template is invoked with.
func renderTemplate(ctx *RenderingContext, n *ir.Node) {
	out := ctx.Output
	out.WriteStartMethodInvocation(ctx.runtime(templateFunc))
	out.BuildLambda(templateSignature(ctx), func() {
		w := ctx.NodeWriter()
		w.BeginWriterScope(ctx, templateWriterParameter)
		ctx.RenderChildren(n)
		w.EndWriterScope(ctx)
		out.EnsureNewLine().WriteLine("return nil")
	})
	out.WriteEndMethodInvocation(false)
}
