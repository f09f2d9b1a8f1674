package taghelpers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/tagc/pkg/taghelpers"
)

// greeting renames its tag to <p>, appends "!" to its body, turns the
// tone attribute into a class and copies attr-lang onto the element.
type greeting struct {
	Tone  string
	Attrs map[string]string
}

func (g *greeting) Construct() {
	g.Attrs = make(map[string]string)
}

func (g *greeting) Process(_ context.Context, tc *taghelpers.Context, out *taghelpers.Output) error {
	child, err := out.ChildContent()
	if err != nil {
		return err
	}
	out.TagName = "p"
	out.SetHTMLContent(child + "!")
	if _, ok := tc.Attribute("tone"); ok {
		out.SetAttribute("class", "tone-"+g.Tone)
	}
	if lang, ok := g.Attrs["lang"]; ok {
		out.SetAttribute("lang", lang)
	}
	return nil
}

// greetingPage is written the way tagc generates pages.
type greetingPage struct {
	taghelpers.Page
	Name   string
	Hidden bool

	__tagHelperStringValueBuffer string
	__tagHelperExecutionContext  *taghelpers.ExecutionContext
	__tagHelperRunner            taghelpers.Runner
	__tagHelperScopeManager      taghelpers.ScopeManagerCell
	greeting                     *greeting
}

func (p *greetingPage) Execute(ctx context.Context) error {
	p.WriteLiteral("<main>")
	p.__tagHelperExecutionContext = p.__tagHelperScopeManager.Get(p.StartTagHelperWritingScope, p.EndTagHelperWritingScope).Begin("greeting", taghelpers.TagModeStartTagAndEndTag, "00000000000000000000000000000001", func() error {
		p.WriteLiteral("Hello, ")
		p.Write(p.Name)
		return nil
	})
	p.greeting = taghelpers.CreateTagHelper[greeting]()
	p.__tagHelperExecutionContext.Add(p.greeting)
	p.BeginWriteTagHelperAttribute()
	p.WriteLiteral("warm")
	p.__tagHelperStringValueBuffer = p.EndWriteTagHelperAttribute()
	p.greeting.Tone = p.__tagHelperStringValueBuffer
	p.__tagHelperExecutionContext.AddTagHelperAttribute("tone", p.greeting.Tone, taghelpers.ValueStylePlain)
	if p.greeting.Attrs == nil {
		return taghelpers.InvalidIndexerAssignment("attr-lang", "greeting", "Attrs")
	}
	p.BeginWriteTagHelperAttribute()
	p.WriteLiteral("en")
	p.__tagHelperStringValueBuffer = p.EndWriteTagHelperAttribute()
	p.greeting.Attrs["lang"] = p.__tagHelperStringValueBuffer
	p.__tagHelperExecutionContext.AddTagHelperAttribute("attr-lang", p.greeting.Attrs["lang"], taghelpers.ValueStylePlain)
	p.BeginAddHTMLAttributeValues(p.__tagHelperExecutionContext, "hidden", 1, taghelpers.ValueStylePlain)
	p.AddHTMLAttributeValue("", -1, p.Hidden, -1, 0, false)
	p.EndAddHTMLAttributeValues(p.__tagHelperExecutionContext)
	if err := p.__tagHelperRunner.Run(ctx, p.__tagHelperExecutionContext); err != nil {
		return err
	}
	if !p.__tagHelperExecutionContext.Output().IsContentModified() {
		if err := p.__tagHelperExecutionContext.SetOutputContent(); err != nil {
			return err
		}
	}
	p.Write(p.__tagHelperExecutionContext.Output())
	p.__tagHelperExecutionContext = p.__tagHelperScopeManager.Get(p.StartTagHelperWritingScope, p.EndTagHelperWritingScope).End()
	p.WriteLiteral("</main>")
	return nil
}

func TestGeneratedPageRenders(t *testing.T) {
	tests := []struct {
		name string
		page *greetingPage
		want string
	}{
		{
			name: "visible",
			page: &greetingPage{Name: "<Ana>"},
			want: `<main><p class="tone-warm" lang="en">Hello, &lt;Ana&gt;!</p></main>`,
		},
		{
			name: "hidden",
			page: &greetingPage{Name: "Bo", Hidden: true},
			want: `<main><p hidden="hidden" class="tone-warm" lang="en">Hello, Bo!</p></main>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, taghelpers.Render(context.Background(), tt.page, &sb))
			assert.Equal(t, tt.want, sb.String())
			assert.Nil(t, tt.page.__tagHelperExecutionContext)
		})
	}
}
