package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Print returns a tree-like string representation of the IR for debugging
func Print(node *Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n *Node, indent int) {
	if n == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix)
	sb.WriteString(n.Kind.String())

	switch n.Kind {
	case KindDocument:
		sb.WriteString(fmt.Sprintf(": package %s", n.Name))

	case KindImport:
		if n.Alias != "" {
			sb.WriteString(fmt.Sprintf(": %s %q", n.Alias, n.Name))
		} else {
			sb.WriteString(fmt.Sprintf(": %q", n.Name))
		}

	case KindClass:
		sb.WriteString(": " + n.Name)
		if n.BaseType != "" {
			sb.WriteString(" embeds " + n.BaseType)
		}

	case KindMethod:
		sb.WriteString(": " + n.Name)

	case KindField:
		sb.WriteString(fmt.Sprintf(": %s %s", n.Name, n.TypeName))

	case KindToken:
		sb.WriteString(fmt.Sprintf(" (%s) %s", n.TokenKind, strconv.Quote(n.Content)))

	case KindTagHelper, KindTagHelperBody:
		if n.TagName != "" {
			sb.WriteString(fmt.Sprintf(": <%s> %s", n.TagName, n.TagMode))
		}

	case KindTagHelperCreate:
		sb.WriteString(fmt.Sprintf(": %s = %s", n.FieldName, n.TagHelperType))

	case KindTagHelperHTMLAttribute:
		sb.WriteString(fmt.Sprintf(": %s (%s)", n.AttributeName, n.ValueStyle))

	case KindTagHelperProperty:
		sb.WriteString(fmt.Sprintf(": %s", n.AttributeName))
		if b := n.BoundAttribute; b != nil {
			sb.WriteString(fmt.Sprintf(" -> %s.%s", n.FieldName, b.PropertyName))
			var flags []string
			if b.IsStringProperty {
				flags = append(flags, "string")
			}
			if b.IsEnum {
				flags = append(flags, "enum")
			}
			if n.IsIndexerNameMatch {
				flags = append(flags, "indexer "+b.IndexerTypeName)
			}
			if len(flags) > 0 {
				sb.WriteString(" [" + strings.Join(flags, ", ") + "]")
			}
		}
		sb.WriteString(fmt.Sprintf(" (%s)", n.ValueStyle))

	case KindHTMLAttributeValue, KindExpressionAttributeValue, KindCodeAttributeValue:
		if n.Prefix != "" {
			sb.WriteString(fmt.Sprintf(": prefix %s", strconv.Quote(n.Prefix)))
		}
	}

	if n.Span != nil {
		sb.WriteString(" @ " + n.Span.String())
	}
	sb.WriteString("\n")

	for _, c := range n.Children {
		printNode(sb, c, indent+1)
	}
}
