// Package prompt runs tree-structured question lists, where the answer to a
// question selects a follow-up list that is asked before the next sibling.
package prompt

import (
	"context"
	"fmt"
	"maps"
)

// Type selects how a question is asked and how its answer is typed.
type Type string

const (
	// TypeInput asks for free text. This is the default.
	TypeInput Type = "input"
	// TypeConfirm asks a yes/no question and answers with a bool.
	TypeConfirm Type = "confirm"
	// TypeList asks the user to pick one of Choices.
	TypeList Type = "list"
)

// Question is a single prompt. Tree maps the string form of this question's
// answer to the questions that follow from it.
type Question struct {
	Name    string                `json:"name"`
	Message string                `json:"message"`
	Type    Type                  `json:"type,omitempty"`
	Default any                   `json:"default,omitempty"`
	Choices []string              `json:"choices,omitempty"`
	Tree    map[string][]Question `json:"tree,omitempty"`
}

// Kind returns the question type, defaulting to TypeInput.
func (q Question) Kind() Type {
	if q.Type == "" {
		return TypeInput
	}
	return q.Type
}

// Answers is the flat bag of collected answers keyed by question name.
type Answers map[string]any

// Clone returns a shallow copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	maps.Copy(out, a)
	return out
}

// Asker asks one question and returns the answers it produced. Most askers
// return a single key named after the question.
type Asker interface {
	Ask(ctx context.Context, q Question) (Answers, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(ctx context.Context, q Question) (Answers, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context, q Question) (Answers, error) {
	return f(ctx, q)
}

// Run asks questions in order and returns the seed merged with every answer.
// After each answer the follow-up list keyed by TreeKey(answer) is asked,
// depth first, before moving on. Fresh answers overwrite seed values of the
// same name. The questions slice is never modified.
func Run(ctx context.Context, questions []Question, seed Answers, asker Asker) (Answers, error) {
	data := seed.Clone()
	if err := run(ctx, questions, data, asker); err != nil {
		return nil, err
	}
	return data, nil
}

func run(ctx context.Context, questions []Question, data Answers, asker Asker) error {
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return err
		}

		answers, err := asker.Ask(ctx, q)
		if err != nil {
			return err
		}
		maps.Copy(data, answers)

		next := q.Tree[TreeKey(data[q.Name])]
		if len(next) == 0 {
			continue
		}
		if err := run(ctx, next, data, asker); err != nil {
			return err
		}
	}
	return nil
}

// TreeKey returns the string form of an answer used to select a follow-up
// list. Booleans become "true" or "false" and nil becomes "".
func TreeKey(answer any) string {
	if answer == nil {
		return ""
	}
	return fmt.Sprint(answer)
}

// WithDefaults returns a copy of questions, following every tree, where a
// question whose name appears in values takes that value as its default.
func WithDefaults(questions []Question, values map[string]any) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		if v, ok := values[q.Name]; ok {
			q.Default = v
		}
		if q.Tree != nil {
			tree := make(map[string][]Question, len(q.Tree))
			for key, sub := range q.Tree {
				tree[key] = WithDefaults(sub, values)
			}
			q.Tree = tree
		}
		out[i] = q
	}
	return out
}
