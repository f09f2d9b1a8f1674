package codegen

import (
	"fmt"
	"strconv"

	"github.com/lhaig/tagc/internal/ir"
)

// NodeWriter decides how leaf content becomes statements in the current
// buffering scope. The driver always calls the writer on top of the
// RenderingContext stack.
type NodeWriter interface {
	WriteHTMLContent(ctx *RenderingContext, n *ir.Node)
	WriteExpression(ctx *RenderingContext, n *ir.Node)
	WriteCodeBlock(ctx *RenderingContext, n *ir.Node)

	WriteHTMLAttributeValue(ctx *RenderingContext, n *ir.Node)
	WriteExpressionAttributeValue(ctx *RenderingContext, n *ir.Node)
	WriteCodeAttributeValue(ctx *RenderingContext, n *ir.Node)

	// BeginWriterScope redirects page output to the named io.Writer until
	// the matching EndWriterScope.
	BeginWriterScope(ctx *RenderingContext, writer string)
	EndWriterScope(ctx *RenderingContext)
}

// scopedWriter is implemented by writers that wrap the content rendered
// while they are active.
type scopedWriter interface {
	Enter(ctx *RenderingContext)
	Exit(ctx *RenderingContext)
}

// writeInline writes the code tokens of n as they are and renders any
// other child through the driver.
func writeInline(ctx *RenderingContext, n *ir.Node) {
	for _, c := range n.Children {
		if c.Kind == ir.KindToken {
			ctx.Output.Write(c.Content)
			continue
		}
		ctx.RenderNode(c)
	}
}

func spanStart(n *ir.Node) string {
	return strconv.Itoa(n.SpanOrUndefined().AbsoluteIndex)
}

func prefixStart(n *ir.Node) string {
	if n.PrefixSpan == nil {
		return "-1"
	}
	return strconv.Itoa(n.PrefixSpan.AbsoluteIndex)
}

// --- runtime ---

// runtimeWriter streams content to the page.
type runtimeWriter struct{}

func (runtimeWriter) WriteHTMLContent(ctx *RenderingContext, n *ir.Node) {
	text := n.TokenContent()
	if text == "" {
		return
	}
	ctx.Output.WriteMethodInvocation(ctx.member(writeLiteralMethod), strconv.Quote(text))
}

func (runtimeWriter) WriteExpression(ctx *RenderingContext, n *ir.Node) {
	writeCall(ctx, n, ctx.member(writeMethod))
}

func (runtimeWriter) WriteCodeBlock(ctx *RenderingContext, n *ir.Node) {
	writeCode(ctx, n)
}

func (runtimeWriter) WriteHTMLAttributeValue(ctx *RenderingContext, n *ir.Node) {
	text := n.Prefix + n.TokenContent()
	if text == "" {
		return
	}
	ctx.Output.WriteMethodInvocation(ctx.member(writeLiteralMethod), strconv.Quote(text))
}

func (w runtimeWriter) WriteExpressionAttributeValue(ctx *RenderingContext, n *ir.Node) {
	writePrefix(ctx, n)
	w.WriteExpression(ctx, n)
}

func (runtimeWriter) WriteCodeAttributeValue(ctx *RenderingContext, n *ir.Node) {
	writePrefix(ctx, n)
	writeCode(ctx, n)
}

func (runtimeWriter) BeginWriterScope(ctx *RenderingContext, writer string) {
	ctx.Output.WriteMethodInvocation(ctx.member(pushWriterMethod), writer)
}

func (runtimeWriter) EndWriterScope(ctx *RenderingContext) {
	ctx.Output.WriteMethodInvocation(ctx.member(popWriterMethod))
}

func writePrefix(ctx *RenderingContext, n *ir.Node) {
	if n.Prefix != "" {
		ctx.Output.WriteMethodInvocation(ctx.member(writeLiteralMethod), strconv.Quote(n.Prefix))
	}
}

// writeCall writes `target(<expression>)` inside a line pragma region.
func writeCall(ctx *RenderingContext, n *ir.Node, target string) {
	ctx.Output.LinePragma(n.SpanOrUndefined(), func() {
		ctx.Output.WriteStartMethodInvocation(target)
		writeInline(ctx, n)
		ctx.Output.WriteEndMethodInvocation(true)
	})
}

// writeCode writes the statements of n inside a line pragma region.
func writeCode(ctx *RenderingContext, n *ir.Node) {
	ctx.Output.LinePragma(n.SpanOrUndefined(), func() {
		writeInline(ctx, n)
		ctx.Output.EnsureNewLine()
	})
}

// --- component body ---

// componentBodyWriter renders the body of a tag occurrence into the
// deferred func the scope manager invokes when the component asks for its
// child content.
type componentBodyWriter struct {
	runtimeWriter
}

func (componentBodyWriter) Enter(ctx *RenderingContext) {
	ctx.Output.WriteLine("func() error {")
	ctx.Output.Indent()
}

func (componentBodyWriter) Exit(ctx *RenderingContext) {
	ctx.Output.EnsureNewLine().WriteLine("return nil")
	ctx.Output.Dedent()
	ctx.Output.Write("}")
}

// --- attribute pieces ---

// attributePieceWriter streams the pieces of a conditional attribute to
// the execution context instead of the page.
type attributePieceWriter struct {
	runtimeWriter
}

func (attributePieceWriter) WriteHTMLAttributeValue(ctx *RenderingContext, n *ir.Node) {
	ctx.Output.WriteMethodInvocation(ctx.member(addHTMLAttributeValueMethod),
		strconv.Quote(n.Prefix),
		prefixStart(n),
		strconv.Quote(n.TokenContent()),
		spanStart(n),
		strconv.Itoa(n.SpanOrUndefined().Length),
		"true")
}

func (attributePieceWriter) WriteExpressionAttributeValue(ctx *RenderingContext, n *ir.Node) {
	out := ctx.Output
	out.LinePragma(n.SpanOrUndefined(), func() {
		out.WriteStartMethodInvocation(ctx.member(addHTMLAttributeValueMethod))
		out.WriteStringLiteral(n.Prefix).WriteParameterSeparator()
		out.Write(prefixStart(n)).WriteParameterSeparator()
		writeInline(ctx, n)
		out.WriteParameterSeparator()
		out.Write(spanStart(n)).WriteParameterSeparator()
		out.Write(strconv.Itoa(n.SpanOrUndefined().Length)).WriteParameterSeparator()
		out.Write("false")
		out.WriteEndMethodInvocation(true)
	})
}

// WriteCodeAttributeValue passes the piece as a template, so the code runs
// when the runtime resolves the attribute value.
func (attributePieceWriter) WriteCodeAttributeValue(ctx *RenderingContext, n *ir.Node) {
	out := ctx.Output
	out.WriteStartMethodInvocation(ctx.member(addHTMLAttributeValueMethod))
	out.WriteStringLiteral(n.Prefix).WriteParameterSeparator()
	out.Write(prefixStart(n)).WriteParameterSeparator()
	out.WriteStartMethodInvocation(ctx.runtime(templateFunc))
	out.BuildLambda(templateSignature(ctx), func() {
		w := runtimeWriter{}
		w.BeginWriterScope(ctx, templateWriterParameter)
		ctx.WithWriter(w, func() { writeCode(ctx, n) })
		w.EndWriterScope(ctx)
		out.WriteLine("return nil")
	})
	out.WriteEndMethodInvocation(false).WriteParameterSeparator()
	out.Write(spanStart(n)).WriteParameterSeparator()
	out.Write(strconv.Itoa(n.SpanOrUndefined().Length)).WriteParameterSeparator()
	out.Write("false")
	out.WriteEndMethodInvocation(true)
}

// --- literal ---

// literalWriter buffers a string property value. Expressions are written
// unescaped.
type literalWriter struct {
	runtimeWriter
}

func (literalWriter) WriteExpression(ctx *RenderingContext, n *ir.Node) {
	writeCall(ctx, n, ctx.member(writeLiteralMethod))
}

func (literalWriter) WriteHTMLAttributeValue(_ *RenderingContext, n *ir.Node) {
	panic(fmt.Sprintf("codegen: %s cannot appear in a string property value", n.Kind))
}

func (literalWriter) WriteExpressionAttributeValue(_ *RenderingContext, n *ir.Node) {
	panic(fmt.Sprintf("codegen: %s cannot appear in a string property value", n.Kind))
}

func (literalWriter) WriteCodeAttributeValue(_ *RenderingContext, n *ir.Node) {
	panic(fmt.Sprintf("codegen: %s cannot appear in a string property value", n.Kind))
}

// --- design time ---

// designTimeWriter keeps every expression and statement visible to the
// type checker without producing any output.
type designTimeWriter struct{}

func (designTimeWriter) WriteHTMLContent(*RenderingContext, *ir.Node) {}

func (designTimeWriter) WriteExpression(ctx *RenderingContext, n *ir.Node) {
	writeDiscard(ctx, n)
}

func (designTimeWriter) WriteCodeBlock(ctx *RenderingContext, n *ir.Node) {
	writeCode(ctx, n)
}

func (designTimeWriter) WriteHTMLAttributeValue(*RenderingContext, *ir.Node) {}

func (designTimeWriter) WriteExpressionAttributeValue(ctx *RenderingContext, n *ir.Node) {
	writeDiscard(ctx, n)
}

func (designTimeWriter) WriteCodeAttributeValue(ctx *RenderingContext, n *ir.Node) {
	writeCode(ctx, n)
}

func (designTimeWriter) BeginWriterScope(*RenderingContext, string) {}

func (designTimeWriter) EndWriterScope(*RenderingContext) {}

// writeDiscard writes `_ = <expression>`.
func writeDiscard(ctx *RenderingContext, n *ir.Node) {
	ctx.Output.LinePragma(n.SpanOrUndefined(), func() {
		ctx.Output.Write("_ = ")
		writeInline(ctx, n)
		ctx.Output.EnsureNewLine()
	})
}

func templateSignature(ctx *RenderingContext) string {
	return fmt.Sprintf("func(%s %s) error", templateWriterParameter, ctx.runtime(writerType))
}
