package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()

	doc, err := LoadFile("testdata/greeting.yaml")
	require.NoError(t, err)
	require.Empty(t, Validate(doc))

	assert.Equal(t, KindDocument, doc.Kind)
	assert.Equal(t, "views", doc.Name)

	th := Find(doc, func(n *Node) bool { return n.Kind == KindTagHelper })
	require.NotNil(t, th)
	assert.Equal(t, "greeting", th.TagName)
	assert.Equal(t, TagModeStartTagAndEndTag, th.TagMode)
	assert.Equal(t, 1, th.SpanOrUndefined().Line)

	prop := Find(doc, func(n *Node) bool { return n.Kind == KindTagHelperProperty })
	require.NotNil(t, prop)
	require.NotNil(t, prop.BoundAttribute)
	assert.True(t, prop.BoundAttribute.IsEnum)
	assert.Equal(t, "ui.Tone", prop.BoundAttribute.TypeName)
	require.Len(t, prop.Children, 1)
	assert.True(t, prop.Children[0].IsCodeToken())
	assert.Equal(t, "Warm", prop.Children[0].Content)
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("testdata/bad-kind.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.GreaterOrEqual(t, len(schemaErr.Problems), 2)
}

func TestDecodeInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{"), FormatJSON)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := LoadFile("testdata/greeting.yaml")
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)

	again, err := Decode(data, FormatJSON)
	require.NoError(t, err)

	if diff := cmp.Diff(doc, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatYAML, FormatForPath("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("b.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("b.json"))
	assert.Equal(t, FormatJSON, FormatForPath("b"))
}
