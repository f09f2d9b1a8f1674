package codegen

import (
	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
	"github.com/lhaig/tagc/internal/source"
)

func testOptions(designTime bool) Options {
	return Options{
		DesignTime:        designTime,
		IDs:               &SequentialIDs{},
		GeneratedFileName: "index.tagc.go",
	}
}

// renderFragment renders nodes outside a document, the way a method body
// would see them.
func renderFragment(designTime bool, nodes ...*ir.Node) (string, *diagnostic.Diagnostics) {
	ctx := newRenderingContext(testOptions(designTime))
	for _, n := range nodes {
		ctx.RenderNode(n)
	}
	res := ctx.result()
	return res.Source, res.Diagnostics
}

func span(line, col, length int) *source.Span {
	return &source.Span{FilePath: "Index.cshtml", AbsoluteIndex: line*100 + col, Line: line, Column: col, Length: length}
}

func tagHelper(tag string, children ...*ir.Node) *ir.Node {
	return &ir.Node{Kind: ir.KindTagHelper, TagName: tag, TagMode: ir.TagModeStartTagAndEndTag, Children: children}
}

func body(children ...*ir.Node) *ir.Node {
	return &ir.Node{Kind: ir.KindTagHelperBody, Children: children}
}

func create(field, typeName string) *ir.Node {
	return &ir.Node{Kind: ir.KindTagHelperCreate, FieldName: field, TagHelperType: typeName}
}

func execute() *ir.Node {
	return &ir.Node{Kind: ir.KindTagHelperExecute}
}

func stringProperty(field, attr string, children ...*ir.Node) *ir.Node {
	return &ir.Node{
		Kind:          ir.KindTagHelperProperty,
		FieldName:     field,
		TagHelperType: "forms.Input",
		AttributeName: attr,
		BoundAttribute: &ir.BoundAttributeDescriptor{
			Name: attr, PropertyName: "Value", TypeName: "string", IsStringProperty: true,
		},
		Children: children,
	}
}

func intProperty(field, attr, propertyName string, children ...*ir.Node) *ir.Node {
	return &ir.Node{
		Kind:          ir.KindTagHelperProperty,
		FieldName:     field,
		TagHelperType: "forms.Input",
		AttributeName: attr,
		BoundAttribute: &ir.BoundAttributeDescriptor{
			Name: attr, PropertyName: propertyName, TypeName: "int",
		},
		Children: children,
	}
}

func enumProperty(attr string, children ...*ir.Node) *ir.Node {
	return &ir.Node{
		Kind:          ir.KindTagHelperProperty,
		FieldName:     "button",
		TagHelperType: "ui.Button",
		AttributeName: attr,
		BoundAttribute: &ir.BoundAttributeDescriptor{
			Name: attr, PropertyName: "Color", TypeName: "ui.Color", IsEnum: true,
		},
		Children: children,
	}
}

func routeProperty(attr string, children ...*ir.Node) *ir.Node {
	return &ir.Node{
		Kind:               ir.KindTagHelperProperty,
		FieldName:          "anchor",
		TagHelperType:      "nav.Anchor",
		AttributeName:      attr,
		IsIndexerNameMatch: true,
		BoundAttribute: &ir.BoundAttributeDescriptor{
			Name:                    "route-",
			PropertyName:            "RouteValues",
			TypeName:                "map[string]string",
			IndexerTypeName:         "string",
			IndexerNamePrefix:       "route-",
			IsIndexerStringProperty: true,
		},
		Children: children,
	}
}

func htmlAttribute(name string, style ir.AttributeValueStyle, children ...*ir.Node) *ir.Node {
	return &ir.Node{Kind: ir.KindTagHelperHTMLAttribute, AttributeName: name, ValueStyle: style, Children: children}
}

func exprValue(prefix, code string) *ir.Node {
	return &ir.Node{Kind: ir.KindExpressionAttributeValue, Prefix: prefix, Children: []*ir.Node{ir.CodeToken(code)}}
}

func htmlValue(prefix, text string) *ir.Node {
	return &ir.Node{Kind: ir.KindHTMLAttributeValue, Prefix: prefix, Children: []*ir.Node{ir.HTMLToken(text)}}
}

func codeValue(prefix, code string) *ir.Node {
	return &ir.Node{Kind: ir.KindCodeAttributeValue, Prefix: prefix, Children: []*ir.Node{ir.CodeToken(code)}}
}

func template(children ...*ir.Node) *ir.Node {
	return &ir.Node{Kind: ir.KindTemplate, Children: children}
}

// sampleDocument exercises every node kind.
func sampleDocument() *ir.Node {
	return &ir.Node{
		Kind: ir.KindDocument,
		Name: "views",
		Children: []*ir.Node{
			{Kind: ir.KindImport, Name: "example.com/app/forms"},
			{Kind: ir.KindImport, Name: "example.com/app/ui"},
			{Kind: ir.KindClass, Name: "IndexPage", BaseType: "taghelpers.Page", Children: []*ir.Node{
				{Kind: ir.KindTagHelperRuntime},
				{Kind: ir.KindField, Name: "input", TypeName: "*forms.Input"},
				{Kind: ir.KindField, Name: "button", TypeName: "*ui.Button"},
				{Kind: ir.KindMethod, Name: "Execute", Children: []*ir.Node{
					ir.HTML("<form>"),
					ir.Code("title := p.Title"),
					tagHelper("button",
						body(
							ir.HTML("Save "),
							&ir.Node{Kind: ir.KindExpression, Children: []*ir.Node{
								ir.CodeToken("p.Icon("),
								template(ir.HTML("<i>disk</i>")),
								ir.CodeToken(")"),
							}},
							tagHelper("input",
								body(),
								create("input", "forms.Input"),
								stringProperty("input", "value", ir.HTML("hello"), ir.Expr("title")),
								intProperty("input", "size", "Size", ir.CodeToken("10")),
								htmlAttribute("class", ir.ValueStylePlain, htmlValue("", "btn"), exprValue(" ", "p.Extra")),
								htmlAttribute("data-id", ir.ValueStylePlain, ir.HTML("x-"), ir.Expr("p.ID")),
								execute(),
							),
						),
						create("button", "ui.Button"),
						enumProperty("color", ir.CodeToken("Red")),
						htmlAttribute("onclick", ir.ValueStyleExpression, codeValue("", "p.WriteLiteral(\"go()\")")),
						execute(),
					),
					ir.HTML("</form>"),
				}},
			}},
		},
	}
}
