package generator

import (
	"github.com/wpmake/cli/internal/prompt"
	"github.com/wpmake/cli/internal/tree"
)

// Lifecycle is the declarative description of a run: the questions to ask
// and the tree of files to write.
type Lifecycle struct {
	Prompts []prompt.Question `json:"prompts,omitempty"`
	Tree    *tree.Node        `json:"tree,omitempty"`
}

// DefaultLifecycle returns an empty lifecycle.
func DefaultLifecycle() Lifecycle {
	return Lifecycle{
		Prompts: []prompt.Question{},
		Tree:    tree.New(),
	}
}

// merge lays override over base field by field. Fields override leaves
// unset keep the base value.
func merge(base, override Lifecycle) Lifecycle {
	out := base
	if override.Prompts != nil {
		out.Prompts = override.Prompts
	}
	if override.Tree != nil {
		out.Tree = override.Tree
	}
	return out
}
