package ir

import (
	"strings"

	"github.com/lhaig/tagc/internal/source"
)

// Node is one element of the intermediate tree produced by the upstream
// binder. The tree is owned top-down: a node owns its Children and no node
// appears twice. Payload fields are meaningful only for the kinds listed
// next to them; Validate enforces the per-kind requirements.
type Node struct {
	Kind     Kind         `json:"kind"`
	Span     *source.Span `json:"span,omitempty"`
	Children []*Node      `json:"children,omitempty"`

	// Token
	TokenKind TokenKind `json:"tokenKind,omitempty"`
	Content   string    `json:"content,omitempty"`

	// Document (package name), Class, Method, Field, Import (path)
	Name string `json:"name,omitempty"`
	// Import alias, Class base type, Field type
	Alias    string `json:"alias,omitempty"`
	BaseType string `json:"baseType,omitempty"`
	TypeName string `json:"typeName,omitempty"`

	// TagHelper, TagHelperBody
	TagName string  `json:"tagName,omitempty"`
	TagMode TagMode `json:"tagMode,omitempty"`

	// TagHelperCreate, TagHelperProperty
	FieldName     string `json:"fieldName,omitempty"`
	TagHelperType string `json:"tagHelperType,omitempty"`

	// TagHelperHTMLAttribute, TagHelperProperty
	AttributeName string              `json:"attributeName,omitempty"`
	ValueStyle    AttributeValueStyle `json:"valueStyle,omitempty"`

	// TagHelperProperty
	BoundAttribute     *BoundAttributeDescriptor `json:"boundAttribute,omitempty"`
	IsIndexerNameMatch bool                      `json:"isIndexerNameMatch,omitempty"`

	// HTMLAttributeValue, ExpressionAttributeValue, CodeAttributeValue
	Prefix     string       `json:"prefix,omitempty"`
	PrefixSpan *source.Span `json:"prefixSpan,omitempty"`
}

// BoundAttributeDescriptor is the static metadata of one bindable property
// of a component. It is supplied by the binder and never modified.
type BoundAttributeDescriptor struct {
	Name                    string `json:"name"`
	PropertyName            string `json:"propertyName"`
	TypeName                string `json:"typeName"`
	IsStringProperty        bool   `json:"isStringProperty,omitempty"`
	IsIndexerStringProperty bool   `json:"isIndexerStringProperty,omitempty"`
	IsEnum                  bool   `json:"isEnum,omitempty"`
	IndexerTypeName         string `json:"indexerTypeName,omitempty"`
	IndexerNamePrefix       string `json:"indexerNamePrefix,omitempty"`
}

// SpanOrUndefined returns the node's span, or source.Undefined.
func (n *Node) SpanOrUndefined() source.Span {
	if n == nil || n.Span == nil {
		return source.Undefined
	}
	return *n.Span
}

// IsCodeToken reports whether n is a token holding host code.
func (n *Node) IsCodeToken() bool {
	return n.Kind == KindToken && n.TokenKind == TokenCode
}

// IsHTMLToken reports whether n is a token holding literal markup.
func (n *Node) IsHTMLToken() bool {
	return n.Kind == KindToken && n.TokenKind == TokenHTML
}

// TokenContent concatenates the content of the direct token children of n.
func (n *Node) TokenContent() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind == KindToken {
			sb.WriteString(c.Content)
		}
	}
	return sb.String()
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the first node in pre-order for which match returns true.
func Find(n *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Constructors used by tests and tooling ---

// HTMLToken creates a literal markup token.
func HTMLToken(content string) *Node {
	return &Node{Kind: KindToken, TokenKind: TokenHTML, Content: content}
}

// CodeToken creates a host-code token.
func CodeToken(content string) *Node {
	return &Node{Kind: KindToken, TokenKind: TokenCode, Content: content}
}

// HTML creates an HTMLContent node holding a single literal token.
func HTML(content string) *Node {
	return &Node{Kind: KindHTMLContent, Children: []*Node{HTMLToken(content)}}
}

// Expr creates an Expression node holding a single code token.
func Expr(code string) *Node {
	return &Node{Kind: KindExpression, Children: []*Node{CodeToken(code)}}
}

// Code creates a CodeBlock node holding a single code token.
func Code(code string) *Node {
	return &Node{Kind: KindCodeBlock, Children: []*Node{CodeToken(code)}}
}

// WithSpan sets the span of n and returns n.
func (n *Node) WithSpan(span source.Span) *Node {
	n.Span = &span
	return n
}
