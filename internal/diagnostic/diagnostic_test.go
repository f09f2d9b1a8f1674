package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lhaig/tagc/internal/source"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestCountsAndOrder(t *testing.T) {
	var d Diagnostics
	d.Warningf(source.Undefined, "first %d", 1)
	d.Add(CodeBlockNotSupportedInAttribute(source.Span{Line: 2, Column: 9}))
	d.Errorf(source.Undefined, "third")

	assert.Equal(t, 3, d.Count())
	assert.Equal(t, 2, d.ErrorCount())
	assert.Equal(t, 1, d.WarningCount())
	assert.Equal(t, 1, d.CountID(IDCodeBlockNotSupportedInAttribute))
	assert.True(t, d.HasErrors())

	msgs := []string{}
	for _, item := range d.All() {
		msgs = append(msgs, item.Message)
	}
	assert.Equal(t, "first 1", msgs[0])
	assert.Equal(t, "third", msgs[2])
	assert.Len(t, d.Errors(), 2)
}

func TestMerge(t *testing.T) {
	a, b := New(), New()
	a.Warningf(source.Undefined, "a")
	b.Errorf(source.Undefined, "b")

	a.Merge(b)
	a.Merge(nil)
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, "b", a.All()[1].Message)
	assert.False(t, New().HasErrors())
}

func TestFormat(t *testing.T) {
	d := New()
	d.Add(CodeBlockNotSupportedInAttribute(source.Span{Line: 2, Column: 9}))
	d.WarningWithHint(source.Undefined, "no runtime", "add a TagHelperRuntime node")

	got := d.Format("Index.cshtml")
	want := "error TH1001[Index.cshtml(3,10)]: " + d.All()[0].Message + "\n" +
		"  hint: write the value as a single expression\n" +
		"warning[<unknown>]: no runtime\n" +
		"  hint: add a TagHelperRuntime node"
	assert.Equal(t, want, got)
	assert.Empty(t, New().Format("x"))
}

func TestTemplateDiagnosticNamesType(t *testing.T) {
	diag := TemplateNotSupportedInAttribute(source.Span{FilePath: "a.cshtml"}, "int")
	assert.Equal(t, IDTemplateNotSupportedInAttribute, diag.ID)
	assert.Equal(t, Error, diag.Severity)
	assert.Contains(t, diag.Message, `expected a "int" attribute value`)
	assert.Contains(t, diag.String(), "error TH1002[a.cshtml(1,1)]")
}
