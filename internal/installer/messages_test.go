package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatList(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "empty", names: nil, want: ""},
		{name: "one", names: []string{"a"}, want: "a install"},
		{name: "two", names: []string{"a", "b"}, want: "a install and b install"},
		{name: "three", names: []string{"a", "b", "c"}, want: "a install, b install, and c install"},
		{name: "four", names: []string{"a", "b", "c", "d"}, want: "a install, b install, c install, and d install"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatList(tt.names, nil))
		})
	}
}

func TestFormatList_Style(t *testing.T) {
	star := func(s string) string { return "*" + s + "*" }
	assert.Equal(t, "*a install* and *b install*", FormatList([]string{"a", "b"}, star))
}

func TestInstallMessage(t *testing.T) {
	assert.Equal(t, "", InstallMessage("", 0))
	assert.Equal(t,
		"Running npm install to install the required dependencies. If this fails, try running the command yourself.",
		InstallMessage("npm install", 1))
	assert.Equal(t,
		"Running npm install and composer install to install the required dependencies. If this fails, try running the commands yourself.",
		InstallMessage("npm install and composer install", 2))
}

func TestSkipMessage(t *testing.T) {
	assert.Equal(t, "", SkipMessage("", 0))
	assert.Equal(t,
		"Skipping npm install. When you are ready  to install these dependencies, run the command yourself.",
		SkipMessage("npm install", 1))
	assert.Contains(t, SkipMessage("a install and b install", 2), "run the commands yourself.")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil, nil, nil, nil))

	got := Summary([]string{"npm"}, []string{"composer"}, nil, nil)
	assert.Equal(t,
		"\n\nRunning npm install to install the required dependencies. If this fails, try running the command yourself."+
			"\n\nSkipping composer install. When you are ready  to install these dependencies, run the command yourself.\n\n",
		got)

	onlySkipped := Summary(nil, []string{"npm"}, nil, nil)
	assert.NotContains(t, onlySkipped, "Running")
	assert.Contains(t, onlySkipped, "Skipping npm install.")
}
