package ir

import (
	"fmt"
	"strings"
)

// Validate checks an IR document against the contract the generator relies
// on and returns a list of error messages. An empty slice indicates the
// document is valid. The generator panics on the same conditions, so
// callers that accept untrusted documents run Validate first.
func Validate(doc *Node) []string {
	if doc == nil {
		return []string{"document is nil"}
	}
	var errors []string
	if doc.Kind != KindDocument {
		errors = append(errors, fmt.Sprintf("root node is %s, want Document", doc.Kind))
	}
	errors = append(errors, validateNode(doc, "document", 0)...)
	return errors
}

// validateNode checks a single node and recurses into its children.
// depth counts the TagHelper nodes enclosing n.
func validateNode(n *Node, context string, depth int) []string {
	var errors []string
	if n == nil {
		return append(errors, fmt.Sprintf("%s: nil node", context))
	}
	if n.Kind < 0 || n.Kind >= KindCount {
		return append(errors, fmt.Sprintf("%s: %v", context, n.Kind))
	}

	switch n.Kind {
	case KindDocument:
		if n.Name == "" {
			errors = append(errors, fmt.Sprintf("%s: Document has empty package name", context))
		}

	case KindImport:
		if n.Name == "" {
			errors = append(errors, fmt.Sprintf("%s: Import has empty path", context))
		}

	case KindClass, KindMethod:
		if n.Name == "" {
			errors = append(errors, fmt.Sprintf("%s: %s has empty name", context, n.Kind))
		}

	case KindField:
		if n.Name == "" || n.TypeName == "" {
			errors = append(errors, fmt.Sprintf("%s: Field needs both name and type", context))
		}

	case KindToken:
		if len(n.Children) > 0 {
			errors = append(errors, fmt.Sprintf("%s: Token has children", context))
		}

	case KindTagHelper:
		if n.TagName == "" {
			errors = append(errors, fmt.Sprintf("%s: TagHelper has empty tag name", context))
		}
		bodies := 0
		for _, c := range n.Children {
			if c != nil && c.Kind == KindTagHelperBody {
				bodies++
			}
		}
		if bodies > 1 {
			errors = append(errors, fmt.Sprintf("%s: TagHelper %q has %d bodies", context, n.TagName, bodies))
		}
		depth++

	case KindTagHelperBody, KindTagHelperExecute, KindTagHelperHTMLAttribute:
		if depth == 0 {
			errors = append(errors, fmt.Sprintf("%s: %s outside a TagHelper", context, n.Kind))
		}

	case KindTagHelperCreate:
		if depth == 0 {
			errors = append(errors, fmt.Sprintf("%s: TagHelperCreate outside a TagHelper", context))
		}
		if n.FieldName == "" || n.TagHelperType == "" {
			errors = append(errors, fmt.Sprintf("%s: TagHelperCreate needs field name and tag helper type", context))
		}

	case KindTagHelperProperty:
		errors = append(errors, validateProperty(n, context, depth)...)
	}

	for i, c := range n.Children {
		childContext := fmt.Sprintf("%s > %s[%d]", context, childKind(c), i)
		errors = append(errors, validateNode(c, childContext, depth)...)
	}
	return errors
}

func validateProperty(n *Node, context string, depth int) []string {
	var errors []string
	if depth == 0 {
		errors = append(errors, fmt.Sprintf("%s: TagHelperProperty outside a TagHelper", context))
	}
	if n.FieldName == "" {
		errors = append(errors, fmt.Sprintf("%s: TagHelperProperty has empty field name", context))
	}
	if n.AttributeName == "" {
		errors = append(errors, fmt.Sprintf("%s: TagHelperProperty has empty attribute name", context))
	}
	bound := n.BoundAttribute
	if bound == nil {
		return append(errors, fmt.Sprintf("%s: TagHelperProperty %q has no bound attribute", context, n.AttributeName))
	}
	if bound.PropertyName == "" {
		errors = append(errors, fmt.Sprintf("%s: bound attribute %q has empty property name", context, n.AttributeName))
	}
	if n.IsIndexerNameMatch {
		if bound.IndexerTypeName == "" {
			errors = append(errors, fmt.Sprintf("%s: indexer match %q has no indexer type", context, n.AttributeName))
		}
		if !strings.HasPrefix(n.AttributeName, bound.IndexerNamePrefix) {
			errors = append(errors, fmt.Sprintf("%s: attribute %q does not start with indexer prefix %q",
				context, n.AttributeName, bound.IndexerNamePrefix))
		}
	} else if bound.TypeName == "" {
		errors = append(errors, fmt.Sprintf("%s: bound attribute %q has empty type name", context, n.AttributeName))
	}
	if stringValued(n) {
		errors = append(errors, attributePieces(n, context)...)
	}
	return errors
}

func stringValued(n *Node) bool {
	if n.IsIndexerNameMatch {
		return n.BoundAttribute.IsIndexerStringProperty
	}
	return n.BoundAttribute.IsStringProperty
}

// attributePieces reports attribute value pieces anywhere below a string
// property; its value is buffered as one literal and has no pieces.
func attributePieces(n *Node, context string) []string {
	var errors []string
	for _, c := range n.Children {
		Walk(c, func(d *Node) bool {
			switch d.Kind {
			case KindHTMLAttributeValue, KindExpressionAttributeValue, KindCodeAttributeValue:
				errors = append(errors, fmt.Sprintf("%s: %s cannot appear in string property %q",
					context, d.Kind, n.AttributeName))
				return false
			}
			return true
		})
	}
	return errors
}

func childKind(n *Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind.String()
}
