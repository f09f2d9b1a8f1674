package ir

import (
	"strings"
	"testing"

	"github.com/lhaig/tagc/internal/source"
)

func sourceSpan(line, col int) source.Span {
	return source.Span{FilePath: "Index.cshtml", AbsoluteIndex: 10, Line: line, Column: col, Length: 6}
}

func TestPrintTagHelper(t *testing.T) {
	out := Print(validDocument())

	expected := []string{
		"Document: package views\n",
		"  Import: \"context\"\n",
		"  Class: IndexPage embeds taghelpers.Page\n",
		"      TagHelper: <input> SelfClosing\n",
		"        TagHelperCreate: input = forms.Input\n",
		"        TagHelperProperty: value -> input.Value [string] (Plain)\n",
		"          HTMLContent\n",
		"            Token (html) \"hello\"\n",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSpan(t *testing.T) {
	n := Expr("p.Name").WithSpan(sourceSpan(2, 4))
	out := Print(n)
	if !strings.HasPrefix(out, "Expression @ Index.cshtml(3,5)\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "  Token (code) \"p.Name\"\n") {
		t.Errorf("missing token line:\n%s", out)
	}
}

func TestKindTextRoundTrip(t *testing.T) {
	for k := KindDocument; k < KindCount; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if back != k {
			t.Errorf("round trip of %s gave %s", k, back)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("Paragraph")); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := KindCount.MarshalText(); err == nil {
		t.Error("expected error for KindCount")
	}
}
