package diagnostic

import (
	"fmt"

	"github.com/lhaig/tagc/internal/source"
)

// Identifiers of the diagnostics raised while generating tag helper code.
const (
	IDCodeBlockNotSupportedInAttribute = "TH1001"
	IDTemplateNotSupportedInAttribute  = "TH1002"
)

// CodeBlockNotSupportedInAttribute reports a statement block found inside
// the value of a non-string tag helper property.
func CodeBlockNotSupportedInAttribute(span source.Span) Diagnostic {
	return Diagnostic{
		ID:       IDCodeBlockNotSupportedInAttribute,
		Severity: Error,
		Message: "code blocks (e.g. @{ x := 23 }) must not appear in non-string tag helper attribute values; " +
			"the value is already an expression",
		Span: span,
		Hint: "write the value as a single expression",
	}
}

// TemplateNotSupportedInAttribute reports inline markup found inside the
// value of a non-string tag helper property.
func TemplateNotSupportedInAttribute(span source.Span, expectedTypeName string) Diagnostic {
	return Diagnostic{
		ID:       IDTemplateNotSupportedInAttribute,
		Severity: Error,
		Message: fmt.Sprintf("inline markup blocks (e.g. @<p>content</p>) must not appear in non-string tag helper "+
			"attribute values; expected a %q attribute value", expectedTypeName),
		Span: span,
	}
}
