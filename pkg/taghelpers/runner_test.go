package taghelpers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/tagc/pkg/taghelpers"
)

// recorder appends its name to a shared log when it is initialized and
// processed.
type recorder struct {
	name  string
	order int
	log   *[]string
	err   error
}

func (r *recorder) Init(*taghelpers.Context) { *r.log = append(*r.log, "init "+r.name) }

func (r *recorder) Order() int { return r.order }

func (r *recorder) Process(context.Context, *taghelpers.Context, *taghelpers.Output) error {
	*r.log = append(*r.log, "process "+r.name)
	return r.err
}

type plain struct{ processed bool }

func (p *plain) Process(context.Context, *taghelpers.Context, *taghelpers.Output) error {
	p.processed = true
	return nil
}

func TestRunnerOrder(t *testing.T) {
	var log []string
	ec := newOccurrence("div")
	ec.Add(&recorder{name: "late", order: 10, log: &log})
	ec.Add(&recorder{name: "first", order: -5, log: &log})
	ec.Add(&recorder{name: "a", log: &log})
	ec.Add(&recorder{name: "b", log: &log})

	require.NoError(t, taghelpers.Runner{}.Run(context.Background(), ec))
	assert.Equal(t, []string{
		"init first", "init a", "init b", "init late",
		"process first", "process a", "process b", "process late",
	}, log)

	// Registration order is left alone.
	assert.Equal(t, "late", ec.TagHelpers()[0].(*recorder).name)
}

func TestRunnerStopsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	ec := newOccurrence("div")
	ec.Add(&recorder{name: "a", log: &log, err: boom})
	ec.Add(&recorder{name: "b", log: &log})

	err := taghelpers.Runner{}.Run(context.Background(), ec)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "<div>")
	assert.NotContains(t, log, "process b")
}

func TestRunnerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	th := &plain{}
	ec := newOccurrence("div")
	ec.Add(th)

	assert.ErrorIs(t, taghelpers.Runner{}.Run(ctx, ec), context.Canceled)
	assert.False(t, th.processed)
}

func TestScopeManagerNesting(t *testing.T) {
	m := taghelpers.NewScopeManager(nil, nil)
	outer := m.Begin("form", taghelpers.TagModeStartTagAndEndTag, "1", nil)
	outer.Items()["theme"] = "dark"

	inner := m.Begin("input", taghelpers.TagModeSelfClosing, "2", nil)
	assert.Equal(t, 2, m.Depth())
	assert.Equal(t, "dark", inner.Items()["theme"])
	assert.Equal(t, taghelpers.TagModeSelfClosing, inner.Output().TagMode)
	assert.Equal(t, "2", inner.Context().UniqueID)

	inner.Items()["theme"] = "light"
	assert.Equal(t, "dark", outer.Items()["theme"])

	assert.Same(t, outer, m.End())
	assert.Nil(t, m.End())
	assert.Zero(t, m.Depth())
	assert.PanicsWithValue(t, taghelpers.ErrScopeUnderflow, func() { m.End() })
}

func TestScopeManagerCellBuildsOnce(t *testing.T) {
	var cell taghelpers.ScopeManagerCell
	first := cell.Get(nil, nil)
	require.NotNil(t, first)
	assert.Same(t, first, cell.Get(func() {}, func() string { return "" }))
}

func TestChildContentRendersOnce(t *testing.T) {
	p := &taghelpers.Page{}
	calls := 0
	m := taghelpers.NewScopeManager(p.StartTagHelperWritingScope, p.EndTagHelperWritingScope)
	ec := m.Begin("p", taghelpers.TagModeStartTagAndEndTag, "1", func() error {
		calls++
		p.Write("a<b")
		return nil
	})

	for range 2 {
		child, err := ec.Output().ChildContent()
		require.NoError(t, err)
		assert.Equal(t, "a&lt;b", child)
	}
	assert.Equal(t, 1, calls)
	require.NoError(t, ec.SetOutputContent())
	assert.Equal(t, "a&lt;b", ec.Output().Content())
}

func TestSetOutputContentReturnsBodyError(t *testing.T) {
	p := &taghelpers.Page{}
	boom := errors.New("boom")
	m := taghelpers.NewScopeManager(p.StartTagHelperWritingScope, p.EndTagHelperWritingScope)
	ec := m.Begin("p", taghelpers.TagModeStartTagAndEndTag, "1", func() error { return boom })

	assert.ErrorIs(t, ec.SetOutputContent(), boom)
	assert.False(t, ec.Output().IsContentModified())
	assert.NoError(t, p.Err())
}

func TestBoundAttributesAreNotWritten(t *testing.T) {
	ec := newOccurrence("a")
	ec.AddTagHelperAttribute("route-id", "7", taghelpers.ValueStylePlain)
	ec.AddHTMLAttribute("class", "nav", taghelpers.ValueStylePlain)

	assert.Len(t, ec.Context().AllAttributes, 2)
	assert.Len(t, ec.Output().Attributes, 1)

	a, ok := ec.Context().Attribute("route-id")
	require.True(t, ok)
	assert.Equal(t, "7", a.Value)
	_, ok = ec.Context().Attribute("missing")
	assert.False(t, ok)
}

func TestInvalidIndexerAssignment(t *testing.T) {
	err := taghelpers.InvalidIndexerAssignment("route-id", "nav.Anchor", "RouteValues")
	assert.ErrorIs(t, err, taghelpers.ErrInvalidIndexerAssignment)
	assert.Contains(t, err.Error(), `"route-id"`)
	assert.Contains(t, err.Error(), "nav.Anchor.RouteValues")
}

type anchor struct {
	plain
	RouteValues map[string]string
	built       int
}

func (a *anchor) Construct() {
	a.RouteValues = map[string]string{}
	a.built++
}

func TestCreateTagHelperRunsConstructor(t *testing.T) {
	a := taghelpers.CreateTagHelper[anchor]()
	require.NotNil(t, a.RouteValues)
	assert.Equal(t, 1, a.built)

	a.RouteValues["id"] = "7"
	assert.Equal(t, "7", a.RouteValues["id"])

	p := taghelpers.CreateTagHelper[plain]()
	assert.False(t, p.processed)
}
