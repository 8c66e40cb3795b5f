package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	bprompt "github.com/Bowery/prompt"
)

// TerminalAsker asks questions interactively on the controlling terminal.
type TerminalAsker struct {
	// Out receives choice listings. Defaults to stdout.
	Out io.Writer
}

// NewTerminalAsker returns an asker that reads from the terminal.
func NewTerminalAsker() *TerminalAsker {
	return &TerminalAsker{Out: os.Stdout}
}

// Ask implements Asker.
func (t *TerminalAsker) Ask(ctx context.Context, q Question) (Answers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		value any
		err   error
	)
	switch q.Kind() {
	case TypeConfirm:
		value, err = t.confirm(q)
	case TypeList:
		value, err = t.choose(q)
	default:
		value, err = t.input(q)
	}
	if errors.Is(err, bprompt.ErrCTRLC) {
		err = context.Canceled
	}
	if err != nil {
		return nil, fmt.Errorf("asking %s: %w", q.Name, err)
	}
	return Answers{q.Name: value}, nil
}

func (t *TerminalAsker) input(q Question) (string, error) {
	def := ""
	if q.Default != nil {
		def = fmt.Sprint(q.Default)
	}
	return bprompt.BasicDefault(label(q), def)
}

func (t *TerminalAsker) confirm(q Question) (bool, error) {
	def := "n"
	if v, ok := DefaultValue(q).(bool); ok && v {
		def = "y"
	}
	answer, err := bprompt.Custom(label(q)+" (y/n) ["+def+"]", func(in string) (string, bool) {
		if strings.TrimSpace(in) == "" {
			return def, true
		}
		if _, err := ParseBool(in); err != nil {
			fmt.Fprintln(t.out(), "please answer y or n")
			return in, false
		}
		return in, true
	})
	if err != nil {
		return false, err
	}
	return ParseBool(answer)
}

func (t *TerminalAsker) choose(q Question) (string, error) {
	for i, c := range q.Choices {
		fmt.Fprintf(t.out(), "  %d) %s\n", i+1, c)
	}

	def := fmt.Sprint(DefaultValue(q))
	return bprompt.Custom(label(q)+" ["+def+"]", func(in string) (string, bool) {
		choice, ok := pick(q.Choices, in, def)
		if !ok {
			fmt.Fprintln(t.out(), "pick one of the listed choices")
		}
		return choice, ok
	})
}

func (t *TerminalAsker) out() io.Writer {
	if t.Out == nil {
		return os.Stdout
	}
	return t.Out
}

// pick resolves a typed choice, accepting either the choice text or its
// one-based index.
func pick(choices []string, in, def string) (string, bool) {
	in = strings.TrimSpace(in)
	if in == "" {
		return def, true
	}
	if slices.Contains(choices, in) {
		return in, true
	}
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	return "", false
}

func label(q Question) string {
	if q.Message != "" {
		return q.Message
	}
	return q.Name
}
