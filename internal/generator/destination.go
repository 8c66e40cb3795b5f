package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/wpmake/cli/internal/output"
)

const filePerm = 0o644

// Destination is the directory a generator writes into. Every write is
// recorded with a status so the run can be summarised afterwards.
//
// A pretend destination reads through to the real directory but keeps all
// writes in memory.
type Destination struct {
	// Root is the destination directory on disk, used as the working
	// directory of installers.
	Root string

	fs      billy.Filesystem
	base    billy.Filesystem
	pretend bool

	mu      sync.Mutex
	status  map[string]string
	written []string
	before  map[string][]byte
}

// NewDestination returns a destination writing to root on disk.
func NewDestination(root string) *Destination {
	return newDestination(root, osfs.New(root), nil)
}

// NewPretendDestination returns a destination that reads root on disk and
// writes to memory.
func NewPretendDestination(root string) *Destination {
	d := newDestination(root, memfs.New(), osfs.New(root))
	d.pretend = true
	return d
}

// NewMemoryDestination returns a destination backed only by fsys. It is
// mainly used in tests.
func NewMemoryDestination(fsys billy.Filesystem) *Destination {
	if fsys == nil {
		fsys = memfs.New()
	}
	return newDestination("", fsys, nil)
}

func newDestination(root string, fsys, base billy.Filesystem) *Destination {
	return &Destination{
		Root:   root,
		fs:     fsys,
		base:   base,
		status: make(map[string]string),
		before: make(map[string][]byte),
	}
}

// Pretend reports whether writes are kept in memory.
func (d *Destination) Pretend() bool {
	return d.pretend
}

// Filesystem returns the filesystem writes go to.
func (d *Destination) Filesystem() billy.Filesystem {
	return d.fs
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// Read returns the content of p. It returns an error matching fs.ErrNotExist
// when the file exists nowhere.
func (d *Destination) Read(p string) ([]byte, error) {
	p = clean(p)
	data, err := util.ReadFile(d.fs, p)
	if err == nil || d.base == nil || !isNotExist(err) {
		return data, err
	}
	return util.ReadFile(d.base, p)
}

// ReadString returns the content of p, or fallback when it does not exist.
func (d *Destination) ReadString(p string, fallback func() (string, error)) (string, error) {
	data, err := d.Read(p)
	switch {
	case err == nil:
		return string(data), nil
	case isNotExist(err):
		return fallback()
	default:
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
}

// Exists reports whether p exists.
func (d *Destination) Exists(p string) bool {
	_, err := d.Read(p)
	return err == nil
}

// MkdirAll creates dir and its parents.
func (d *Destination) MkdirAll(dir string) error {
	dir = clean(dir)
	if dir == "" {
		return nil
	}
	return d.fs.MkdirAll(dir, 0o755)
}

// Write stores data at p and records whether the file was created, modified
// or left identical.
func (d *Destination) Write(p string, data []byte) error {
	p = clean(p)
	if p == "" {
		return fmt.Errorf("empty destination path")
	}

	previous, err := d.Read(p)
	exists := err == nil
	if err != nil && !isNotExist(err) {
		return fmt.Errorf("reading %s: %w", p, err)
	}

	status := output.StatusCreated
	if exists {
		status = output.StatusModified
		if bytes.Equal(previous, data) {
			status = output.StatusIdentical
		}
	}

	if status != output.StatusIdentical {
		if err := util.WriteFile(d.fs, p, data, filePerm); err != nil {
			return fmt.Errorf("writing %s: %w", p, err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, seen := d.status[p]; !seen {
		d.written = append(d.written, p)
		if exists {
			d.before[p] = previous
		}
		d.status[p] = status
	} else if d.status[p] == output.StatusIdentical && status != output.StatusIdentical {
		d.status[p] = status
	}

	output.Debug("wrote file", "path", p, "status", status)
	return nil
}

// Files returns every written path with its status.
func (d *Destination) Files() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.status))
	for p, s := range d.status {
		out[p] = s
	}
	return out
}

// Written returns written paths in write order.
func (d *Destination) Written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.written...)
}

// Changes describes every written file for a dry-run report, sorted by path.
// Modified JSON files carry a structural diff.
func (d *Destination) Changes() ([]output.FileChange, error) {
	files := d.Files()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	changes := make([]output.FileChange, 0, len(paths))
	for _, p := range paths {
		change := output.FileChange{Path: p, Status: files[p]}
		if change.Status == output.StatusModified && isStructured(p) {
			after, err := util.ReadFile(d.fs, p)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", p, err)
			}
			d.mu.Lock()
			before := d.before[p]
			d.mu.Unlock()
			diff, err := output.StructuredDiff(p, before, after)
			if err != nil {
				return nil, err
			}
			change.Diff = diff
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func isStructured(p string) bool {
	switch path.Ext(p) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist)
}
