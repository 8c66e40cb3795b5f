package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// statusColumn is where file statuses are aligned.
	statusColumn = 40
)

// TreeNode represents a node in the file tree.
type TreeNode struct {
	Name     string
	Status   string
	IsDir    bool
	Children []*TreeNode
}

// RenderFileTree renders the files written by a run below root. files maps a
// slash separated relative path to its status (created, modified, ...).
func RenderFileTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &TreeNode{Name: root, IsDir: true}
	for p, status := range files {
		parts := strings.Split(path.Clean(p), "/")
		current := top
		for i, part := range parts {
			current = current.child(part, i < len(parts)-1)
		}
		current.Status = status
	}

	sortTree(top)

	var sb strings.Builder
	sb.WriteString(GetStyles().Bold.Render(top.Name + "/"))
	sb.WriteString("\n")
	for i, child := range top.Children {
		renderNode(&sb, child, "", i == len(top.Children)-1)
	}
	return sb.String()
}

func (n *TreeNode) child(name string, isDir bool) *TreeNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &TreeNode{Name: name, IsDir: isDir}
	n.Children = append(n.Children, c)
	return c
}

// sortTree sorts directories first, then names alphabetically.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isLast bool) {
	connector := treeEdge
	nextPrefix := prefix + treeVert
	if isLast {
		connector = treeLast
		nextPrefix = prefix + treeSpace
	}

	name := node.Name
	if node.IsDir {
		name += "/"
	}
	line := prefix + connector + name

	if node.Status != "" {
		padding := statusColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + StatusStyle(node.Status).Render(node.Status)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		renderNode(sb, child, nextPrefix, i == len(node.Children)-1)
	}
}
