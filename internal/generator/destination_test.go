package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpmake/cli/internal/output"
)

func TestDestination_Statuses(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "same.txt", []byte("same"), 0o644))
	require.NoError(t, util.WriteFile(fsys, "old.txt", []byte("old"), 0o644))
	d := NewMemoryDestination(fsys)

	require.NoError(t, d.Write("new.txt", []byte("new")))
	require.NoError(t, d.Write("/same.txt", []byte("same")))
	require.NoError(t, d.Write("dir/../old.txt", []byte("changed")))

	assert.Equal(t, map[string]string{
		"new.txt":  output.StatusCreated,
		"same.txt": output.StatusIdentical,
		"old.txt":  output.StatusModified,
	}, d.Files())
	assert.Equal(t, []string{"new.txt", "same.txt", "old.txt"}, d.Written())

	data, err := d.Read("old.txt")
	require.NoError(t, err)
	assert.Equal(t, "changed", string(data))
}

func TestDestination_RewriteKeepsFirstStatus(t *testing.T) {
	d := NewMemoryDestination(nil)
	require.NoError(t, d.Write("a.txt", []byte("1")))
	require.NoError(t, d.Write("a.txt", []byte("2")))
	assert.Equal(t, output.StatusCreated, d.Files()["a.txt"])
}

func TestDestination_ReadString(t *testing.T) {
	d := NewMemoryDestination(nil)

	got, err := d.ReadString("missing.js", func() (string, error) { return "fallback", nil })
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	require.NoError(t, d.Write("present.js", []byte("present")))
	got, err = d.ReadString("present.js", func() (string, error) {
		t.Fatal("fallback called for an existing file")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "present", got)
}

func TestDestination_EmptyPath(t *testing.T) {
	assert.Error(t, NewMemoryDestination(nil).Write("/", []byte("x")))
}

func TestPretendDestination_LeavesDiskAlone(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"name": "demo"}`), 0o644))

	d := NewPretendDestination(root)
	assert.True(t, d.Pretend())
	assert.True(t, d.Exists("package.json"))

	require.NoError(t, d.Write("package.json", []byte(`{"name": "demo", "private": true}`)))
	require.NoError(t, d.Write("readme.txt", []byte("hi")))

	onDisk, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name": "demo"}`, string(onDisk))
	assert.NoFileExists(t, filepath.Join(root, "readme.txt"))

	changes, err := d.Changes()
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "package.json", changes[0].Path)
	assert.Equal(t, output.StatusModified, changes[0].Status)
	assert.Contains(t, changes[0].Diff, "private")
	assert.Equal(t, "readme.txt", changes[1].Path)
	assert.Equal(t, output.StatusCreated, changes[1].Status)
	assert.Empty(t, changes[1].Diff)
}

func TestDestination_WritesToDisk(t *testing.T) {
	root := t.TempDir()
	d := NewDestination(root)

	require.NoError(t, d.MkdirAll("assets/css"))
	require.NoError(t, d.Write("assets/css/style.css", []byte("body{}")))

	assert.DirExists(t, filepath.Join(root, "assets", "css"))
	data, err := os.ReadFile(filepath.Join(root, "assets", "css", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}
