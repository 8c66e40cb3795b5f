// Package installer runs the dependency installers (npm install, composer
// install, ...) of a freshly generated project.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"

	"golang.org/x/sync/errgroup"

	oerrors "github.com/wpmake/cli/internal/errors"
)

// exitCommandNotFound is the shell status for a missing command.
const exitCommandNotFound = 127

// Command is one installer and whether it should run.
type Command struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Commands is an ordered installer list.
type Commands []Command

// DefaultCommands returns npm and composer, both enabled.
func DefaultCommands() Commands {
	return Commands{
		{Name: "npm", Enabled: true},
		{Name: "composer", Enabled: true},
	}
}

// Partition splits the list into enabled and disabled names, keeping order.
func (c Commands) Partition() (run, skipped []string) {
	for _, cmd := range c {
		if cmd.Enabled {
			run = append(run, cmd.Name)
		} else {
			skipped = append(skipped, cmd.Name)
		}
	}
	return run, skipped
}

// With returns a copy of c where name has the given state, appending it if
// it was not listed.
func (c Commands) With(name string, enabled bool) Commands {
	out := slices.Clone(c)
	for i := range out {
		if out[i].Name == name {
			out[i].Enabled = enabled
			return out
		}
	}
	return append(out, Command{Name: name, Enabled: enabled})
}

// DisableAll returns a copy of c with every command disabled.
func (c Commands) DisableAll() Commands {
	out := slices.Clone(c)
	for i := range out {
		out[i].Enabled = false
	}
	return out
}

// Result is the outcome of one installer.
type Result struct {
	Name   string
	Output []byte
	Err    error
}

// Runner executes a single installer in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string) ([]byte, error)
}

// ExecRunner runs `<name> install` as a subprocess.
type ExecRunner struct{}

// Run implements Runner. Output is captured rather than streamed so that
// concurrent installers do not interleave on the terminal.
func (ExecRunner) Run(ctx context.Context, dir, name string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, "install")
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.Bytes(), classify(name, err)
}

func classify(name string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.Is(err, exec.ErrNotFound) ||
		(errors.As(err, &exitErr) && exitErr.ExitCode() == exitCommandNotFound) {
		return fmt.Errorf("could not find %s: %w", name, oerrors.ErrCommandNotFound)
	}
	return fmt.Errorf("%s install: %w", name, err)
}

// Installer runs several installers concurrently.
type Installer struct {
	Runner Runner

	// Concurrency bounds the number of simultaneous installers. Zero means
	// no limit.
	Concurrency int
}

// New returns an Installer backed by ExecRunner.
func New() *Installer {
	return &Installer{Runner: ExecRunner{}}
}

// RunAll runs every named installer in dir and waits for all of them. A
// failing installer never cancels the others; each failure is reported in
// its Result. Results keep the order of names.
func (i *Installer) RunAll(ctx context.Context, dir string, names []string) []Result {
	results := make([]Result, len(names))
	runner := i.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	var g errgroup.Group
	if i.Concurrency > 0 {
		g.SetLimit(i.Concurrency)
	}
	for idx, name := range names {
		g.Go(func() error {
			out, err := runner.Run(ctx, dir, name)
			results[idx] = Result{Name: name, Output: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
