package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChanges_NoChanges(t *testing.T) {
	got := RenderChanges([]FileChange{{Path: "a", Status: StatusIdentical}})
	assert.Equal(t, "No changes detected.\n", got)
}

func TestRenderChanges(t *testing.T) {
	got := RenderChanges([]FileChange{
		{Path: "package.json", Status: StatusModified, Diff: "line one\n\nline two"},
		{Path: "readme.txt", Status: StatusCreated},
		{Path: "same.txt", Status: StatusIdentical},
	})

	assert.Contains(t, got, "Added:")
	assert.Contains(t, got, "  + ")
	assert.Contains(t, got, "readme.txt")
	assert.Contains(t, got, "Modified:")
	assert.Contains(t, got, "    line one\n    line two\n")
	assert.Contains(t, got, "Summary: 1 added, 1 modified")
	assert.NotContains(t, got, "same.txt")
}

func TestStructuredDiff(t *testing.T) {
	before := []byte(`{"name": "demo", "version": "1.0.0"}`)
	after := []byte(`{"name": "demo", "version": "1.1.0", "private": true}`)

	diff, err := StructuredDiff("package.json", before, after)
	require.NoError(t, err)
	assert.Contains(t, diff, "version")
	assert.Contains(t, diff, "private")
}

func TestStructuredDiff_Equal(t *testing.T) {
	doc := []byte(`{"a": 1}`)
	diff, err := StructuredDiff("x.json", doc, doc)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestStructuredDiff_Invalid(t *testing.T) {
	_, err := StructuredDiff("x.json", []byte("{"), []byte("{}"))
	assert.Error(t, err)
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb\n", "  "))
}
