package generators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/generator"
	"github.com/wpmake/cli/internal/prompt"
	"github.com/wpmake/cli/internal/tree"
)

// BlueprintFile is the file name of a blueprint inside its directory.
const BlueprintFile = "blueprint.yaml"

// ParseBlueprint decodes and validates a YAML or JSON blueprint. location is
// used in error messages.
func ParseBlueprint(data []byte, location string) (*Blueprint, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("parsing blueprint: %v", err),
			Location: location,
			Cause:    oerrors.ErrValidation,
		}
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(raw); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: location,
			Hint:     "See 'wpmake list' for the built-in blueprints to start from.",
			Cause:    oerrors.ErrValidation,
		}
	}

	// Re-encode in authored key order so tree.Node and prompt.Question
	// decode through their JSON methods and inline json leaves keep it.
	jsonData, err := orderedJSON(data)
	if err != nil {
		return nil, fmt.Errorf("encoding blueprint: %w", err)
	}
	var b Blueprint
	if err := json.Unmarshal(jsonData, &b); err != nil {
		return nil, fmt.Errorf("decoding blueprint %s: %w", location, err)
	}
	if b.Tree == nil {
		b.Tree = tree.New()
	}
	return &b, nil
}

// LoadFile reads a blueprint from disk. Its templates are the files next to
// it under templates/.
func LoadFile(path string) (*Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("blueprint %s does not exist", path), path,
				"Pass the path of a blueprint.yaml file.")
		}
		return nil, fmt.Errorf("reading blueprint: %w", err)
	}

	b, err := ParseBlueprint(data, path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(filepath.Dir(path), "templates")
	return &Generator{
		Blueprint: b,
		Templates: layered{os.DirFS(dir), sharedTemplates()},
		Hooks:     commonHooks(b),
	}, nil
}

// Lifecycle returns a fresh copy of the blueprint lifecycle. Each run gets
// its own tree since runs mutate it.
func (b *Blueprint) Lifecycle() (generator.Lifecycle, error) {
	questions, err := cloneQuestions(b.Prompts)
	if err != nil {
		return generator.Lifecycle{}, err
	}

	root := tree.New()
	if b.Tree != nil {
		data, err := json.Marshal(b.Tree)
		if err != nil {
			return generator.Lifecycle{}, err
		}
		if err := json.Unmarshal(data, root); err != nil {
			return generator.Lifecycle{}, err
		}
	}
	return generator.Lifecycle{Prompts: questions, Tree: root}, nil
}

func cloneQuestions(questions []prompt.Question) ([]prompt.Question, error) {
	if questions == nil {
		return []prompt.Question{}, nil
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	var out []prompt.Question
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// orderedJSON converts a YAML document to JSON keeping mapping keys in the
// order they were written.
func orderedJSON(data []byte) ([]byte, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJSONNode(&buf, &doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, n *yamlv3.Node) error {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSONNode(buf, n.Content[0])
	case yamlv3.AliasNode:
		return writeJSONNode(buf, n.Alias)
	case yamlv3.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSONNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yamlv3.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yamlv3.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(out)
	default:
		buf.WriteString("null")
	}
	return nil
}
