package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestSubtree_AutoVivifies(t *testing.T) {
	root := New()

	b := root.Subtree(KindJSON, "a/b/c")
	require.NotNil(t, b)
	assert.Empty(t, b)

	a, ok := root.Children["a"]
	require.True(t, ok, "intermediate directory a should exist")
	bNode, ok := a.Children["b"]
	require.True(t, ok, "intermediate directory b should exist")
	c, ok := bNode.Children["c"]
	require.True(t, ok, "leaf directory c should exist")
	assert.NotNil(t, c.Branch(KindJSON))
}

func TestSubtree_SameMapTwice(t *testing.T) {
	root := New()

	first := root.Subtree(KindModules, "src/js")
	first["main.js"] = "source"

	second := root.Subtree(KindModules, "src/js")
	assert.Equal(t, "source", second["main.js"])

	second["other.js"] = "more"
	assert.Len(t, first, 2, "both calls should share one map")
}

func TestSubtree_PathNormalisation(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "empty path is root", path: "", want: nil},
		{name: "leading slash", path: "/src", want: []string{"src"}},
		{name: "double slash", path: "src//js", want: []string{"src", "js"}},
		{name: "trailing slash", path: "src/", want: []string{"src"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New()
			b := root.Subtree(KindCopies, tt.path)
			b["x"] = "y"

			node := root
			for _, seg := range tt.want {
				require.Contains(t, node.Children, seg)
				node = node.Children[seg]
			}
			assert.Equal(t, "y", node.Branch(KindCopies)["x"])
		})
	}
}

func TestKinds_Order(t *testing.T) {
	n := New()
	n.SetBranch("zeta", Branch{})
	n.SetBranch(KindCopies, Branch{})
	n.SetBranch("alpha", Branch{})
	n.SetBranch(KindJSON, Branch{})

	assert.Equal(t, []Kind{KindJSON, KindCopies, "alpha", "zeta"}, n.Kinds())
}

func TestNode_UnmarshalYAML(t *testing.T) {
	src := `
json:
  package.json: package
templates:
  readme.md: readme.md
tree:
  src:
    modules:
      main.js: main
    tree:
      js:
        copies:
          vendor.js: vendor.js
`
	var n Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))

	assert.Equal(t, "package", n.Branch(KindJSON)["package.json"])
	assert.Equal(t, "readme.md", n.Branch(KindTemplates)["readme.md"])
	require.Contains(t, n.Children, "src")
	src2 := n.Children["src"]
	assert.Equal(t, "main", src2.Branch(KindModules)["main.js"])
	require.Contains(t, src2.Children, "js")
	assert.Equal(t, "vendor.js", src2.Children["js"].Branch(KindCopies)["vendor.js"])
}

func TestNode_JSONLeavesKeepOrder(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"json":{"package.json":{"name":"demo","version":"1.0.0","author":"me"},"composer.json":"composer","empty.json":null}}`), &n))

	raw, ok := n.Branch(KindJSON)["package.json"].(json.RawMessage)
	require.True(t, ok)
	assert.Equal(t, `{"name":"demo","version":"1.0.0","author":"me"}`, string(raw))
	assert.Equal(t, "composer", n.Branch(KindJSON)["composer.json"])
	assert.Nil(t, n.Branch(KindJSON)["empty.json"])
}

func TestNode_MarshalRoundTrip(t *testing.T) {
	n := New()
	n.Subtree(KindJSON, "")["composer.json"] = map[string]any{"name": "x"}
	n.Subtree(KindTemplates, "inc")["plugin.php"] = "plugin.php"

	data, err := yaml.Marshal(n)
	require.NoError(t, err)

	var back Node
	require.NoError(t, yaml.Unmarshal(data, &back))
	raw, ok := back.Branch(KindJSON)["composer.json"].(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"name": "x"}`, string(raw))
	assert.Equal(t, "plugin.php", back.Children["inc"].Branch(KindTemplates)["plugin.php"])
}
