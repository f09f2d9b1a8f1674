package taghelpers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/tagc/pkg/taghelpers"
)

func writeOutput(t *testing.T, o *taghelpers.Output) string {
	t.Helper()
	var sb strings.Builder
	n, err := o.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	return sb.String()
}

func TestOutputTagModes(t *testing.T) {
	tests := []struct {
		name string
		out  *taghelpers.Output
		want string
	}{
		{
			name: "start and end tag",
			out: &taghelpers.Output{TagName: "p", TagMode: taghelpers.TagModeStartTagAndEndTag,
				Attributes: []taghelpers.Attribute{{Name: "class", Value: "a<b"}}},
			want: `<p class="a&lt;b"></p>`,
		},
		{
			name: "self closing",
			out:  &taghelpers.Output{TagName: "br", TagMode: taghelpers.TagModeSelfClosing},
			want: `<br />`,
		},
		{
			name: "start tag only",
			out: &taghelpers.Output{TagName: "input", TagMode: taghelpers.TagModeStartTagOnly,
				Attributes: []taghelpers.Attribute{{Name: "disabled", Style: taghelpers.ValueStyleMinimized}}},
			want: `<input disabled>`,
		},
		{
			name: "markup and numbers",
			out: &taghelpers.Output{TagName: "a", Attributes: []taghelpers.Attribute{
				{Name: "href", Value: taghelpers.HTMLString("/x?a=1&b=2")},
				{Name: "tabindex", Value: 3},
				{Name: "title"},
			}},
			want: `<a href="/x?a=1&b=2" tabindex="3" title=""></a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, writeOutput(t, tt.out))
		})
	}
}

func TestOutputContent(t *testing.T) {
	o := &taghelpers.Output{TagName: "p"}
	assert.False(t, o.IsContentModified())

	o.SetContent("1 < 2")
	assert.True(t, o.IsContentModified())
	assert.Equal(t, "<p>1 &lt; 2</p>", writeOutput(t, o))

	o.SetHTMLContent("<b>bold</b>")
	o.AppendHTML("<i>!</i>")
	assert.Equal(t, "<b>bold</b><i>!</i>", o.Content())
}

func TestOutputWithoutTagWritesContentOnly(t *testing.T) {
	o := &taghelpers.Output{TagName: "p", TagMode: taghelpers.TagModeSelfClosing}
	o.SetHTMLContent("<em>x</em>")
	o.TagName = ""
	assert.Equal(t, "<em>x</em>", writeOutput(t, o))
}

func TestOutputSuppressed(t *testing.T) {
	o := &taghelpers.Output{TagName: "p"}
	o.SetContent("gone")
	o.SuppressOutput()
	assert.Empty(t, writeOutput(t, o))
}

func TestOutputAttributes(t *testing.T) {
	o := &taghelpers.Output{TagName: "div"}
	o.SetAttribute("id", "a")
	o.SetAttribute("class", "x")
	o.SetAttribute("id", "b")
	o.SetAttribute("class", "y")
	o.RemoveAttribute("class")

	require.Len(t, o.Attributes, 1)
	assert.Equal(t, taghelpers.Attribute{Name: "id", Value: "b"}, o.Attributes[0])
}

func TestOutputChildContentWithoutBody(t *testing.T) {
	o := &taghelpers.Output{}
	child, err := o.ChildContent()
	assert.NoError(t, err)
	assert.Empty(t, child)
}
