package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Equal(t, "", RenderFileTree("demo", nil))
}

func TestRenderFileTree(t *testing.T) {
	got := RenderFileTree("demo", map[string]string{
		"package.json":      StatusCreated,
		"src/js/main.js":    StatusCreated,
		"readme.txt":        StatusModified,
		"src/css/style.css": StatusCreated,
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "demo/")
	assert.Contains(t, lines[1], "├── src/", "directories sort first")
	assert.Contains(t, lines[2], "│   ├── css/")
	assert.Contains(t, lines[3], "style.css")
	assert.Contains(t, lines[5], "main.js")
	assert.Contains(t, lines[6], "package.json")
	assert.Contains(t, lines[7], "└── readme.txt")
	assert.Contains(t, lines[7], StatusModified)
}
