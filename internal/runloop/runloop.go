// Package runloop schedules generator steps into named phases that run in a
// fixed order.
package runloop

import (
	"context"
	"fmt"
	"slices"

	"github.com/wpmake/cli/internal/output"
)

// Phase is a named stage of a generator run.
type Phase string

// Phases in run order.
const (
	Initializing Phase = "initializing"
	Prompting    Phase = "prompting"
	Configuring  Phase = "configuring"
	Default      Phase = "default"
	Writing      Phase = "writing"
	Install      Phase = "install"
	End          Phase = "end"
)

// Phases lists every phase in run order.
var Phases = []Phase{Initializing, Prompting, Configuring, Default, Writing, Install, End}

// Step is one unit of work.
type Step func(ctx context.Context) error

type entry struct {
	tag  string
	step Step
}

// Loop queues steps per phase. Steps may schedule further steps while the
// loop is running; a step added to a phase that already drained runs before
// any later phase continues. Phases outside Phases run after End, in the
// order they were first used.
type Loop struct {
	queues map[Phase][]entry
	tags   map[string]bool
	extra  []Phase
}

// New returns an empty loop.
func New() *Loop {
	return &Loop{
		queues: make(map[Phase][]entry),
		tags:   make(map[string]bool),
	}
}

// Add queues step in phase. A non-empty tag is only ever queued once; Add
// reports false when the tag was already used.
func (l *Loop) Add(phase Phase, tag string, step Step) bool {
	if tag != "" {
		if l.tags[tag] {
			return false
		}
		l.tags[tag] = true
	}
	if !slices.Contains(Phases, phase) && !slices.Contains(l.extra, phase) {
		l.extra = append(l.extra, phase)
	}
	l.queues[phase] = append(l.queues[phase], entry{tag: tag, step: step})
	return true
}

// Pending returns the tags queued in phase, in order.
func (l *Loop) Pending(phase Phase) []string {
	tags := make([]string, 0, len(l.queues[phase]))
	for _, e := range l.queues[phase] {
		tags = append(tags, e.tag)
	}
	return tags
}

// Run drains the queues phase by phase. The first failing step stops the
// loop and its error is returned.
func (l *Loop) Run(ctx context.Context) error {
	for {
		phase, e, ok := l.next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		output.Debug("running step", "phase", phase, "step", e.tag)
		if err := e.step(ctx); err != nil {
			if e.tag == "" {
				return fmt.Errorf("%s: %w", phase, err)
			}
			return fmt.Errorf("%s %s: %w", phase, e.tag, err)
		}
	}
}

// next pops the first queued step of the earliest non-empty phase.
func (l *Loop) next() (Phase, entry, bool) {
	for _, phases := range [][]Phase{Phases, l.extra} {
		for _, p := range phases {
			q := l.queues[p]
			if len(q) == 0 {
				continue
			}
			l.queues[p] = q[1:]
			return p, q[0], true
		}
	}
	return "", entry{}, false
}
