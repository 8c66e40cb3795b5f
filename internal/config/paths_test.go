package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wpmakerc"), paths.ConfigFile)
	assert.Equal(t, home, paths.HomeDir)
}

func TestGetConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("WPMAKE_CONFIG", "/tmp/custom-rc")

	got, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-rc", got)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/abs/path", want: "/abs/path"},
		{in: "~", want: home},
		{in: "~/x/y", want: filepath.Join(home, "x/y")},
		{in: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
