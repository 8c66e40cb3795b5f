package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildDate, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.CUESDKVersion)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:       "v1.2.3",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-01",
		GoVersion:     "go1.25.0",
		CUESDKVersion: "v0.15.4",
	}

	s := info.String()
	assert.True(t, strings.HasPrefix(s, "wpmake version v1.2.3\n"))
	assert.Contains(t, s, "Commit:    abc123")
	assert.Contains(t, s, "CUE SDK:   v0.15.4")
}

func TestModuleVersion(t *testing.T) {
	deps := []*debug.Module{
		{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
		{Path: cueModulePath, Version: "v0.15.4"},
		{Path: "example.com/replaced", Version: "v1.0.0", Replace: &debug.Module{Version: "v1.0.1"}},
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "direct", path: cueModulePath, want: "v0.15.4"},
		{name: "replaced", path: "example.com/replaced", want: "v1.0.1"},
		{name: "missing", path: "example.com/none", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleVersion(deps, tt.path))
		})
	}
}
