package prompt

import (
	"context"
	"fmt"
	"strings"
)

// DefaultsAsker answers every question with its default. Confirm questions
// without a default answer false; list questions fall back to the first
// choice.
type DefaultsAsker struct{}

// Ask implements Asker.
func (DefaultsAsker) Ask(_ context.Context, q Question) (Answers, error) {
	return Answers{q.Name: DefaultValue(q)}, nil
}

// DefaultValue returns the value DefaultsAsker would give for q.
func DefaultValue(q Question) any {
	switch q.Kind() {
	case TypeConfirm:
		if q.Default == nil {
			return false
		}
		b, err := ParseBool(q.Default)
		if err != nil {
			return false
		}
		return b
	case TypeList:
		if q.Default != nil {
			return fmt.Sprint(q.Default)
		}
		if len(q.Choices) > 0 {
			return q.Choices[0]
		}
		return ""
	default:
		if q.Default == nil {
			return ""
		}
		return q.Default
	}
}

// PresetAsker answers from a fixed bag, typically read from an answers
// file, and defers to Fallback for names it does not hold.
type PresetAsker struct {
	Answers  Answers
	Fallback Asker
}

// Ask implements Asker.
func (p PresetAsker) Ask(ctx context.Context, q Question) (Answers, error) {
	if v, ok := p.Answers[q.Name]; ok {
		if q.Kind() == TypeConfirm {
			b, err := ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("answer for %s: %w", q.Name, err)
			}
			v = b
		}
		return Answers{q.Name: v}, nil
	}
	if p.Fallback != nil {
		return p.Fallback.Ask(ctx, q)
	}
	return DefaultsAsker{}.Ask(ctx, q)
}

// ParseBool accepts bools and the usual yes/no spellings.
func ParseBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a yes/no value: %v", v)
}
