package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
)

// renderTagHelper scopes a fresh TagOccurrenceContext to one tag
// occurrence; its Body, Create, attribute and Execute nodes are children.
func renderTagHelper(ctx *RenderingContext, n *ir.Node) {
	occurrence := NewTagOccurrenceContext(n.TagName, n.TagMode)
	ctx.WithTagOccurrence(occurrence, func() {
		ctx.RenderChildren(n)
	})
}

// renderTagHelperBody opens the scope of a tag occurrence. The children
// become a deferred func so the component can render, inspect or drop its
// own content.
func renderTagHelperBody(ctx *RenderingContext, n *ir.Node) {
	if ctx.DesignTime() {
		ctx.RenderChildren(n)
		return
	}

	tag := requireTagOccurrence(ctx, n)
	out := ctx.Output
	out.WriteStartAssignment(ctx.executionContext())
	out.WriteStartMethodInvocation(ctx.scopeManager() + "." + beginMethod)
	out.WriteStringLiteral(tag.TagName).WriteParameterSeparator()
	out.Write(ctx.runtime(tagModeConstPrefix + tag.TagMode.String())).WriteParameterSeparator()
	out.WriteStringLiteral(ctx.NextID()).WriteParameterSeparator()
	ctx.WithWriter(componentBodyWriter{}, func() {
		ctx.RenderChildren(n)
	})
	out.WriteEndMethodInvocation(true)
}

func renderTagHelperCreate(ctx *RenderingContext, n *ir.Node) {
	if n.FieldName == "" || n.TagHelperType == "" {
		panic("codegen: TagHelperCreate needs a field name and a tag helper type")
	}

	field := ctx.member(n.FieldName)
	ctx.Output.WriteStartAssignment(field).
		WriteLinef("%s[%s]()", ctx.runtime(createTagHelperFunc), n.TagHelperType)

	if !ctx.DesignTime() {
		ctx.Output.WriteMethodInvocation(ctx.executionContext()+"."+addMethod, field)
	}
}

// renderTagHelperExecute runs the components of the occurrence, falls back
// to the captured body when none of them set the content, writes the
// result and pops the scope opened by the Body.
func renderTagHelperExecute(ctx *RenderingContext, _ *ir.Node) {
	if ctx.DesignTime() {
		return
	}

	out := ctx.Output
	ec := ctx.executionContext()
	output := ec + "." + outputMethod + "()"

	out.BuildScope(fmt.Sprintf("if err := %s.%s(%s, %s); err != nil",
		ctx.member(ctx.Symbols().RunnerVariable), runMethod, contextParameter, ec), func() {
		out.WriteLine("return err")
	})
	out.BuildScope(fmt.Sprintf("if !%s.%s()", output, isContentModifiedMethod), func() {
		out.BuildScope(fmt.Sprintf("if err := %s.%s(); err != nil", ec, setOutputContentMethod), func() {
			out.WriteLine("return err")
		})
	})
	out.WriteMethodInvocation(ctx.member(writeMethod), output)
	out.WriteStartAssignment(ec).WriteLinef("%s.%s()", ctx.scopeManager(), endMethod)
}

func renderTagHelperHTMLAttribute(ctx *RenderingContext, n *ir.Node) {
	if ctx.DesignTime() {
		ctx.RenderChildren(n)
		return
	}

	out := ctx.Output
	ec := ctx.executionContext()
	name := strconv.Quote(n.AttributeName)
	style := ctx.runtime(valueStyleConstPrefix + n.ValueStyle.String())

	if hasDynamicPieces(n) {
		// The runtime drops the attribute when its value resolves to nothing.
		out.WriteMethodInvocation(ctx.member(beginAddHTMLAttributeValues),
			ec, name, strconv.Itoa(len(n.Children)), style)
		ctx.WithWriter(attributePieceWriter{}, func() {
			ctx.RenderChildren(n)
		})
		out.WriteMethodInvocation(ctx.member(endAddHTMLAttributeValues), ec)
		return
	}

	buffer := ctx.member(ctx.Symbols().StringValueBufferVariable)
	out.WriteMethodInvocation(ctx.member(beginWriteTagHelperAttribute))
	ctx.WithWriter(runtimeWriter{}, func() {
		ctx.RenderChildren(n)
	})
	out.WriteStartAssignment(buffer).WriteMethodInvocation(ctx.member(endWriteTagHelperAttribute))
	out.WriteMethodInvocation(ec+"."+addHTMLAttributeMethod,
		name, fmt.Sprintf("%s(%s)", ctx.runtime(htmlStringType), buffer), style)
}

func hasDynamicPieces(n *ir.Node) bool {
	for _, c := range n.Children {
		if c.Kind == ir.KindExpressionAttributeValue || c.Kind == ir.KindCodeAttributeValue {
			return true
		}
	}
	return false
}

// renderTagHelperProperty assigns the value of one bound attribute to the
// component property it binds to.
func renderTagHelperProperty(ctx *RenderingContext, n *ir.Node) {
	tag := requireTagOccurrence(ctx, n)
	bound := n.BoundAttribute
	if bound == nil {
		panic(fmt.Sprintf("codegen: TagHelperProperty %q has no bound attribute", n.AttributeName))
	}
	if n.FieldName == "" {
		panic(fmt.Sprintf("codegen: TagHelperProperty %q has no field name", n.AttributeName))
	}

	accessor := propertyAccessor(ctx, n)
	previous, duplicate := tag.RenderedAccessor(n.AttributeName)
	stringValued := isStringValued(n)

	if !duplicate && !stringValued && reportUnsupportedContent(ctx, n) {
		return
	}

	if !ctx.DesignTime() && n.IsIndexerNameMatch &&
		tag.verifyDictionary(tagHelperTypeName(n)+"."+bound.PropertyName) {
		writeIndexerGuard(ctx, n)
	}

	// An attribute reached twice in one occurrence reuses the first value.
	if duplicate {
		if previous != accessor {
			ctx.Output.WriteStartAssignment(accessor).WriteLine(previous)
		}
		return
	}
	tag.recordAccessor(n.AttributeName, accessor)

	switch {
	case stringValued && ctx.DesignTime():
		writeDesignTimeStringProperty(ctx, n, accessor)
	case stringValued:
		writeRuntimeStringProperty(ctx, n, accessor)
	default:
		writeNonStringProperty(ctx, n, accessor)
	}

	if !ctx.DesignTime() {
		ctx.Output.WriteMethodInvocation(ctx.executionContext()+"."+addTagHelperAttributeMethod,
			strconv.Quote(n.AttributeName), accessor, ctx.runtime(valueStyleConstPrefix+n.ValueStyle.String()))
	}
}

func isStringValued(n *ir.Node) bool {
	if n.IsIndexerNameMatch {
		return n.BoundAttribute.IsIndexerStringProperty
	}
	return n.BoundAttribute.IsStringProperty
}

func tagHelperTypeName(n *ir.Node) string {
	if n.TagHelperType != "" {
		return n.TagHelperType
	}
	return n.FieldName
}

// propertyAccessor returns p.<field>.<Property>, or the map element for
// attributes matched through an indexer prefix.
func propertyAccessor(ctx *RenderingContext, n *ir.Node) string {
	accessor := ctx.member(n.FieldName) + "." + n.BoundAttribute.PropertyName
	if !n.IsIndexerNameMatch {
		return accessor
	}
	key := strings.TrimPrefix(n.AttributeName, n.BoundAttribute.IndexerNamePrefix)
	return accessor + "[" + strconv.Quote(key) + "]"
}

func writeIndexerGuard(ctx *RenderingContext, n *ir.Node) {
	dictionary := ctx.member(n.FieldName) + "." + n.BoundAttribute.PropertyName
	ctx.Output.BuildScope(fmt.Sprintf("if %s == nil", dictionary), func() {
		ctx.Output.WriteLinef("return %s(%s, %s, %s)",
			ctx.runtime(invalidIndexerAssignmentFunc),
			strconv.Quote(n.AttributeName),
			strconv.Quote(tagHelperTypeName(n)),
			strconv.Quote(n.BoundAttribute.PropertyName))
	})
}

// reportUnsupportedContent records a diagnostic for every code block and
// template in the value of n and reports whether it found any.
func reportUnsupportedContent(ctx *RenderingContext, n *ir.Node) bool {
	expectedType := n.BoundAttribute.TypeName
	if n.IsIndexerNameMatch {
		expectedType = n.BoundAttribute.IndexerTypeName
	}

	found := false
	for _, child := range n.Children {
		ir.Walk(child, func(c *ir.Node) bool {
			switch c.Kind {
			case ir.KindCodeBlock:
				ctx.Diagnostics.Add(diagnostic.CodeBlockNotSupportedInAttribute(c.SpanOrUndefined()))
			case ir.KindTemplate:
				ctx.Diagnostics.Add(diagnostic.TemplateNotSupportedInAttribute(c.SpanOrUndefined(), expectedType))
			default:
				return true
			}
			found = true
			return false
		})
	}
	return found
}

// writeDesignTimeStringProperty keeps the children visible to tooling and
// assigns the literal text when that is all the value is.
func writeDesignTimeStringProperty(ctx *RenderingContext, n *ir.Node, accessor string) {
	ctx.WithWriter(designTimeWriter{}, func() {
		ctx.RenderChildren(n)
	})

	value, _ := singleLiteral(n)
	ctx.Output.WriteStartAssignment(accessor).WriteStringLiteral(value).EnsureNewLine()
}

// singleLiteral returns the text of a value made of one piece of markup.
func singleLiteral(n *ir.Node) (string, bool) {
	if len(n.Children) != 1 {
		return "", false
	}
	child := n.Children[0]
	switch {
	case child.IsHTMLToken():
		return child.Content, true
	case child.Kind == ir.KindHTMLContent:
		for _, c := range child.Children {
			if !c.IsHTMLToken() {
				return "", false
			}
		}
		return child.TokenContent(), true
	}
	return "", false
}

func writeRuntimeStringProperty(ctx *RenderingContext, n *ir.Node, accessor string) {
	out := ctx.Output
	buffer := ctx.member(ctx.Symbols().StringValueBufferVariable)

	out.WriteMethodInvocation(ctx.member(beginWriteTagHelperAttribute))
	ctx.WithWriter(literalWriter{}, func() {
		ctx.RenderChildren(n)
	})
	out.WriteStartAssignment(buffer).WriteMethodInvocation(ctx.member(endWriteTagHelperAttribute))
	out.WriteStartAssignment(accessor).WriteLine(buffer)
}

// writeNonStringProperty assigns the value as a Go expression. An enum
// value written as a bare constant name is qualified with the enum type,
// so "Red" bound to ui.Color becomes ui.ColorRed.
func writeNonStringProperty(ctx *RenderingContext, n *ir.Node, accessor string) {
	out := ctx.Output
	out.LinePragma(n.SpanOrUndefined(), func() {
		out.WriteStartAssignment(accessor)
		if n.BoundAttribute.IsEnum && len(n.Children) == 1 && n.Children[0].IsCodeToken() {
			out.Write(n.BoundAttribute.TypeName)
		}
		writeValueInline(ctx, n)
		out.EnsureNewLine()
	})
}

// writeValueInline writes every token below n as one expression.
func writeValueInline(ctx *RenderingContext, n *ir.Node) {
	for _, c := range n.Children {
		if c.Kind == ir.KindToken {
			ctx.Output.Write(c.Content)
			continue
		}
		writeValueInline(ctx, c)
	}
}

// renderTagHelperRuntime declares the page fields the generated calls use.
func renderTagHelperRuntime(ctx *RenderingContext, _ *ir.Node) {
	if ctx.DesignTime() || ctx.runtimeDeclared {
		return
	}
	ctx.runtimeDeclared = true

	sym := ctx.Symbols()
	out := ctx.Output
	out.WriteLinef("%s string", sym.StringValueBufferVariable)
	out.WriteLinef("%s *%s", sym.ExecutionContextVariable, ctx.runtime(executionContextType))
	out.WriteLinef("%s %s", sym.RunnerVariable, ctx.runtime(runnerType))
	out.WriteLinef("%s %s", sym.ScopeManagerVariable, ctx.runtime(scopeManagerCellType))
}

func requireTagOccurrence(ctx *RenderingContext, n *ir.Node) *TagOccurrenceContext {
	tag := ctx.TagOccurrence()
	if tag == nil {
		panic(fmt.Sprintf("codegen: %s outside a TagHelper", n.Kind))
	}
	return tag
}
