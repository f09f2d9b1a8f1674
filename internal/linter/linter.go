package linter

import (
	"go/token"
	"unicode"

	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
)

// Linter performs best-practice checks on a bound IR document. It reports
// warnings (never errors) using the diagnostic system; contract violations
// are left to ir.Validate.
type Linter struct {
	doc  *ir.Node
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on doc and returns diagnostics.
func Lint(doc *ir.Node) *diagnostic.Diagnostics {
	l := &Linter{
		doc:  doc,
		diag: diagnostic.New(),
	}
	if doc == nil {
		return l.diag
	}

	for _, c := range doc.Children {
		if c.Kind == ir.KindClass {
			l.lintClass(c)
		}
	}
	return l.diag
}

// lintClass checks one page and the tag occurrences in its methods.
func (l *Linter) lintClass(class *ir.Node) {
	l.checkClassNaming(class)

	hasRuntime := false
	fields := make(map[string]bool)
	for _, c := range class.Children {
		switch c.Kind {
		case ir.KindTagHelperRuntime:
			hasRuntime = true
		case ir.KindField:
			fields[c.Name] = true
		case ir.KindMethod:
			l.checkEmptyMethod(class.Name, c)
		}
	}

	tagHelpers := 0
	ir.Walk(class, func(n *ir.Node) bool {
		if n.Kind != ir.KindTagHelper {
			return true
		}
		tagHelpers++
		l.lintTagHelper(n, fields)
		return true
	})

	if tagHelpers > 0 && !hasRuntime {
		l.diag.WarningWithHint(class.SpanOrUndefined(),
			"class '"+class.Name+"' uses tag helpers but declares no TagHelperRuntime",
			"add a TagHelperRuntime node so the runtime fields are declared")
	}
}

// lintTagHelper checks the direct children of one tag occurrence.
func (l *Linter) lintTagHelper(tag *ir.Node, fields map[string]bool) {
	hasExecute := false
	created := make(map[string]bool)
	for _, c := range tag.Children {
		switch c.Kind {
		case ir.KindTagHelperExecute:
			hasExecute = true
		case ir.KindTagHelperCreate:
			l.checkDuplicateCreate(tag, c, created)
			l.checkUndeclaredField(c, fields)
		case ir.KindTagHelperHTMLAttribute:
			l.checkEmptyAttributeName(tag, c)
		}
	}
	if !hasExecute {
		l.diag.Warningf(tag.SpanOrUndefined(),
			"tag helper <%s> is never executed; its output is dropped", tag.TagName)
	}
}

// --- Lint rules ---

// checkDuplicateCreate warns when one occurrence creates the same field
// twice; the second instance replaces the first.
func (l *Linter) checkDuplicateCreate(tag, create *ir.Node, created map[string]bool) {
	if created[create.FieldName] {
		l.diag.Warningf(create.SpanOrUndefined(),
			"tag helper <%s> creates field '%s' more than once", tag.TagName, create.FieldName)
	}
	created[create.FieldName] = true
}

// checkUndeclaredField warns when a created tag helper has no Field on the
// page to live in.
func (l *Linter) checkUndeclaredField(create *ir.Node, fields map[string]bool) {
	if create.FieldName != "" && !fields[create.FieldName] {
		l.diag.Warningf(create.SpanOrUndefined(),
			"field '%s' is created but not declared on the page", create.FieldName)
	}
}

// checkEmptyAttributeName warns about an unbound attribute with no name.
func (l *Linter) checkEmptyAttributeName(tag, attr *ir.Node) {
	if attr.AttributeName == "" {
		l.diag.Warningf(attr.SpanOrUndefined(),
			"tag helper <%s> has an attribute with an empty name", tag.TagName)
	}
}

// checkEmptyMethod warns if a method renders nothing.
func (l *Linter) checkEmptyMethod(className string, method *ir.Node) {
	if len(method.Children) == 0 {
		l.diag.Warningf(method.SpanOrUndefined(),
			"method '%s.%s' has an empty body", className, method.Name)
	}
}

// checkClassNaming warns if a page type is not exported.
func (l *Linter) checkClassNaming(class *ir.Node) {
	if !isExportedIdentifier(class.Name) {
		l.diag.Warningf(class.SpanOrUndefined(),
			"class '%s' should be an exported Go identifier", class.Name)
	}
}

func isExportedIdentifier(name string) bool {
	if !token.IsIdentifier(name) {
		return false
	}
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
